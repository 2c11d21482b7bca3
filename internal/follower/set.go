// Package follower holds the follower set type and the diff that drives
// notifications.
package follower

// Set is a set of follower logins that remembers insertion order. The API
// returns followers page by page; keeping discovery order lets notifications
// list new followers in the order they were seen rather than alphabetically.
type Set struct {
	logins []string
	index  map[string]struct{}
}

func NewSet(logins ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(logins))}
	for _, l := range logins {
		s.Add(l)
	}
	return s
}

// Add inserts login and reports whether it was not already present.
// Empty logins are ignored.
func (s *Set) Add(login string) bool {
	if login == "" {
		return false
	}
	if _, ok := s.index[login]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[login] = struct{}{}
	s.logins = append(s.logins, login)
	return true
}

func (s *Set) Contains(login string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[login]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.logins)
}

// Logins returns the logins in insertion order. The slice is a copy.
func (s *Set) Logins() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.logins))
	copy(out, s.logins)
	return out
}

// Diff returns the logins present in cur but not in prev, in cur's insertion
// order. Both arguments may be nil or empty.
func Diff(prev, cur *Set) []string {
	if cur == nil {
		return nil
	}
	var fresh []string
	for _, login := range cur.logins {
		if !prev.Contains(login) {
			fresh = append(fresh, login)
		}
	}
	return fresh
}
