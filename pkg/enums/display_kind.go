package enums

import "fmt"

// DisplayKind describes how an attribute type is rendered in selection UIs.
type DisplayKind string

const (
	DisplayKindDropdown DisplayKind = "dropdown"
	DisplayKindRadio    DisplayKind = "radio"
	DisplayKindColor    DisplayKind = "color"
	DisplayKindButton   DisplayKind = "button"
)

var validDisplayKinds = []DisplayKind{
	DisplayKindDropdown,
	DisplayKindRadio,
	DisplayKindColor,
	DisplayKindButton,
}

// String implements fmt.Stringer.
func (d DisplayKind) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DisplayKind.
func (d DisplayKind) IsValid() bool {
	for _, candidate := range validDisplayKinds {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDisplayKind converts raw input into a DisplayKind.
func ParseDisplayKind(value string) (DisplayKind, error) {
	for _, candidate := range validDisplayKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid display kind %q", value)
}
