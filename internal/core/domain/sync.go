package domain

// SyncState tracks one locked dependency through a sync run. Verified
// is the terminal success; the two failure states are terminal for that
// entry only and never affect siblings.
type SyncState int

const (
	// SyncUnresolved means the entry has not been picked up yet.
	SyncUnresolved SyncState = iota

	// SyncFetching means the entry's fetch is in flight.
	SyncFetching

	// SyncVerified means the working copy is at the locked revision and
	// its content hashes to the locked checksum.
	SyncVerified

	// SyncFetchFailed means the source could not be materialized at the
	// locked revision.
	SyncFetchFailed

	// SyncIntegrityMismatch means the fetched content does not hash to
	// the locked checksum.
	SyncIntegrityMismatch
)

// String returns the state name used in logs and rendered output.
func (s SyncState) String() string {
	switch s {
	case SyncUnresolved:
		return "unresolved"
	case SyncFetching:
		return "fetching"
	case SyncVerified:
		return "verified"
	case SyncFetchFailed:
		return "fetch failed"
	case SyncIntegrityMismatch:
		return "integrity mismatch"
	default:
		return "unknown"
	}
}

// SyncResult is the terminal outcome for one lock entry.
type SyncResult struct {
	Locator Locator
	State   SyncState
	Err     error
}
