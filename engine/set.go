package engine

import "sort"

// UserSet is a set of account logins. Listings are deduplicated into a UserSet
// because the graph can shift under a multi-page fetch and repeat entries.
type UserSet map[string]struct{}

func NewUserSet(logins ...string) UserSet {
	s := make(UserSet, len(logins))
	for _, l := range logins {
		s.Add(l)
	}
	return s
}

func (s UserSet) Add(login string) {
	s[login] = struct{}{}
}

func (s UserSet) Contains(login string) bool {
	_, ok := s[login]
	return ok
}

func (s UserSet) Len() int {
	return len(s)
}

// Difference returns the members of s not present in other.
func (s UserSet) Difference(other UserSet) UserSet {
	out := make(UserSet)
	for l := range s {
		if !other.Contains(l) {
			out.Add(l)
		}
	}
	return out
}

// Intersect returns the members present in both s and other.
func (s UserSet) Intersect(other UserSet) UserSet {
	out := make(UserSet)
	for l := range s {
		if other.Contains(l) {
			out.Add(l)
		}
	}
	return out
}

// Sorted returns the members in lexicographic order. Candidate selection takes
// a capped prefix of this ordering, so it must be stable run to run.
func (s UserSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
