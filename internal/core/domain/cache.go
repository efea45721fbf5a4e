// Package domain contains the core data model of the package manager.
package domain

// CacheEntry records the materialized working copy of one locator: the
// on-disk path and the revision checked out there. Entries are
// ephemeral; losing one only costs a re-fetch, never correctness.
type CacheEntry struct {
	Locator  Locator
	Path     string
	Revision string
}
