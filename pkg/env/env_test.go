package env

import "testing"

func TestGetFallsBack(t *testing.T) {
	if got := Get("PIM_ENV_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv("PIM_ENV_TEST_SET", "value")
	if got := Get("PIM_ENV_TEST_SET", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}

	t.Setenv("PIM_ENV_TEST_EMPTY", "")
	if got := Get("PIM_ENV_TEST_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("empty should fall back, got %q", got)
	}
}
