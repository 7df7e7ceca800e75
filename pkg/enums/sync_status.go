package enums

import "fmt"

// SyncStatus is the reconciliation state of a local record against its
// remote storefront counterpart.
type SyncStatus string

const (
	SyncStatusPending  SyncStatus = "pending"
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusConflict SyncStatus = "conflict"
	SyncStatusMissing  SyncStatus = "missing"
)

var validSyncStatuses = []SyncStatus{
	SyncStatusPending,
	SyncStatusSynced,
	SyncStatusConflict,
	SyncStatusMissing,
}

// String implements fmt.Stringer.
func (s SyncStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SyncStatus.
func (s SyncStatus) IsValid() bool {
	for _, candidate := range validSyncStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSyncStatus converts raw input into a SyncStatus.
func ParseSyncStatus(value string) (SyncStatus, error) {
	for _, candidate := range validSyncStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sync status %q", value)
}

// BadgeClass returns the CSS badge token rendered next to the status.
func (s SyncStatus) BadgeClass() string {
	switch s {
	case SyncStatusSynced:
		return "badge-success"
	case SyncStatusPending:
		return "badge-warning"
	case SyncStatusConflict:
		return "badge-danger"
	case SyncStatusMissing:
		return "badge-secondary"
	default:
		return "badge-light"
	}
}

// Icon returns the icon token rendered next to the status.
func (s SyncStatus) Icon() string {
	switch s {
	case SyncStatusSynced:
		return "check-circle"
	case SyncStatusPending:
		return "clock"
	case SyncStatusConflict:
		return "alert-triangle"
	case SyncStatusMissing:
		return "help-circle"
	default:
		return "circle"
	}
}
