package enums

import "fmt"

// TraderKind discriminates the rows of the shared traders table.
type TraderKind string

const (
	TraderKindSupplier TraderKind = "supplier"
	TraderKindImporter TraderKind = "importer"
)

var validTraderKinds = []TraderKind{
	TraderKindSupplier,
	TraderKindImporter,
}

// String implements fmt.Stringer.
func (k TraderKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known TraderKind.
func (k TraderKind) IsValid() bool {
	for _, candidate := range validTraderKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseTraderKind converts raw input into a TraderKind.
func ParseTraderKind(value string) (TraderKind, error) {
	for _, candidate := range validTraderKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid trader kind %q", value)
}
