package domain

import (
	"slices"
	"strings"
)

// LockEntry pins one dependency to an exact revision and content
// checksum.
type LockEntry struct {
	Locator  Locator
	Revision string
	Checksum string
}

// Lockfile is the set of locked dependencies, keyed by locator. Entries
// keep insertion order in memory; serialization sorts by locator so
// re-saves are byte-stable.
type Lockfile struct {
	Entries []LockEntry
}

// Get returns the entry for the locator, if any.
func (l *Lockfile) Get(loc Locator) (LockEntry, bool) {
	for _, e := range l.Entries {
		if e.Locator == loc {
			return e, true
		}
	}
	return LockEntry{}, false
}

// Upsert replaces the entry sharing the locator, or inserts a new one.
func (l *Lockfile) Upsert(entry LockEntry) {
	for i := range l.Entries {
		if l.Entries[i].Locator == entry.Locator {
			l.Entries[i] = entry
			return
		}
	}
	l.Entries = append(l.Entries, entry)
}

// Prune removes entries whose locator is not in valid and returns the
// removed locators. This is what keeps the lockfile free of stale
// entries after a dependency is dropped from the manifest by hand.
func (l *Lockfile) Prune(valid []Locator) []Locator {
	var removed []Locator
	kept := l.Entries[:0]
	for _, e := range l.Entries {
		if slices.Contains(valid, e.Locator) {
			kept = append(kept, e)
		} else {
			removed = append(removed, e.Locator)
		}
	}
	l.Entries = kept
	return removed
}

// Locators returns the locked locators in entry order.
func (l *Lockfile) Locators() []Locator {
	locs := make([]Locator, len(l.Entries))
	for i, e := range l.Entries {
		locs[i] = e.Locator
	}
	return locs
}

// Sorted returns a copy of the entries ordered by locator.
func (l *Lockfile) Sorted() []LockEntry {
	entries := slices.Clone(l.Entries)
	slices.SortFunc(entries, func(a, b LockEntry) int {
		return strings.Compare(string(a.Locator), string(b.Locator))
	})
	return entries
}
