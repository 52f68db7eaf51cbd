package enums

import "fmt"

// ClientStatus tracks a training client's subscription state. Values are the
// Italian labels surfaced in the admin UI and stored verbatim.
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "Attivo"
	ClientStatusExpiring  ClientStatus = "In scadenza"
	ClientStatusSuspended ClientStatus = "Sospeso"
	ClientStatusInactive  ClientStatus = "Inattivo"
)

var validClientStatuses = []ClientStatus{
	ClientStatusActive,
	ClientStatusExpiring,
	ClientStatusSuspended,
	ClientStatusInactive,
}

// String implements fmt.Stringer.
func (s ClientStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ClientStatus.
func (s ClientStatus) IsValid() bool {
	for _, candidate := range validClientStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseClientStatus converts raw input into a ClientStatus.
func ParseClientStatus(value string) (ClientStatus, error) {
	for _, candidate := range validClientStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid client status %q", value)
}
