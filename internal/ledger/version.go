package ledger

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// dirtyMarker is appended to a version recorded from an uncommitted working tree.
const dirtyMarker = "*"

// VersionKey identifies a run in the ledger: MAJOR.MINOR.PATCH with an
// optional trailing "*" for a dirty working tree.
type VersionKey string

// CurrentVersionKey builds the key for a run of version.
func CurrentVersionKey(version string, dirty bool) VersionKey {
	version = strings.TrimSpace(version)
	if dirty {
		return VersionKey(version + dirtyMarker)
	}
	return VersionKey(version)
}

// ParseVersionKey validates s and returns it as a VersionKey.
func ParseVersionKey(s string) (VersionKey, error) {
	k := VersionKey(strings.TrimSpace(s))
	if !k.Valid() {
		return "", fmt.Errorf("invalid version %q: want MAJOR.MINOR.PATCH", s)
	}
	return k, nil
}

// Dirty reports whether the key was recorded with uncommitted changes.
func (k VersionKey) Dirty() bool {
	return strings.HasSuffix(string(k), dirtyMarker)
}

// Release returns the key without its dirty marker.
func (k VersionKey) Release() string {
	return strings.TrimSuffix(string(k), dirtyMarker)
}

// Valid reports whether the release part is a full semantic version written
// without a "v" prefix.
func (k VersionKey) Valid() bool {
	if strings.HasPrefix(k.Release(), "v") {
		return false
	}
	v := k.semver()
	return semver.IsValid(v) && semver.Canonical(v) == trimBuild(v)
}

func (k VersionKey) semver() string {
	return "v" + k.Release()
}

// trimBuild drops "+build" metadata, which semver.Canonical also strips.
func trimBuild(v string) string {
	if i := strings.IndexByte(v, '+'); i >= 0 {
		return v[:i]
	}
	return v
}

// CompareVersionKeys orders a and b by MAJOR, MINOR and PATCH; for the same
// release the dirty key comes first. ok is false when either key is invalid,
// in which case the keys are not comparable.
func CompareVersionKeys(a, b VersionKey) (cmp int, ok bool) {
	if !a.Valid() || !b.Valid() {
		return 0, false
	}
	if c := semver.Compare(a.semver(), b.semver()); c != 0 {
		return c, true
	}
	switch {
	case a.Dirty() == b.Dirty():
		return 0, true
	case a.Dirty():
		return -1, true
	default:
		return 1, true
	}
}

// Less reports whether k sorts strictly before other.
func (k VersionKey) Less(other VersionKey) bool {
	c, ok := CompareVersionKeys(k, other)
	return ok && c < 0
}

// String renders the key the way the console report shows it.
func (k VersionKey) String() string {
	if k.Dirty() {
		return "v" + k.Release() + " (Working Tree)"
	}
	return "v" + string(k)
}

// SortVersionKeys sorts keys ascending. Invalid keys go last in lexical order.
func SortVersionKeys(keys []VersionKey) {
	slices.SortFunc(keys, func(a, b VersionKey) int {
		av, bv := a.Valid(), b.Valid()
		switch {
		case av && bv:
			c, _ := CompareVersionKeys(a, b)
			if c != 0 {
				return c
			}
		case av:
			return -1
		case bv:
			return 1
		}
		return strings.Compare(string(a), string(b))
	})
}
