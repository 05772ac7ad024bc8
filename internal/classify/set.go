package classify

import "sort"

// Set is an unordered collection of package names. Duplicate names
// collapse silently on insertion, matching set semantics.
type Set map[string]struct{}

// NewSet builds a Set from the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts a name into the set.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names in the set.
func (s Set) Len() int {
	return len(s)
}

// Diff returns the set of names in s that are not in other.
func (s Set) Diff(other Set) Set {
	out := make(Set)
	for n := range s {
		if !other.Contains(n) {
			out.Add(n)
		}
	}
	return out
}

// Intersect returns the set of names present in both s and other.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for n := range s {
		if other.Contains(n) {
			out.Add(n)
		}
	}
	return out
}

// Union returns the set of names present in either s or other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for n := range s {
		out.Add(n)
	}
	for n := range other {
		out.Add(n)
	}
	return out
}

// Equal reports whether s and other contain exactly the same names.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

// Names returns the set's contents sorted lexically, for stable output.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Comm performs a three-way split of two sets, in the manner of comm(1):
// names only in a, names only in b, and names in both.
func Comm(a, b Set) (onlyA, onlyB, both Set) {
	return a.Diff(b), b.Diff(a), a.Intersect(b)
}
