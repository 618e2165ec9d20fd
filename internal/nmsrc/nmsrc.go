package nmsrc

import "strconv"

type Src struct {
	m     map[string]int
	taken map[string]bool
}

func New() Src {
	return Src{
		m:     make(map[string]int),
		taken: make(map[string]bool),
	}
}

// Claim reserves names so that Name and Unique never return them.
func (s Src) Claim(names ...string) {
	for _, name := range names {
		s.taken[name] = true
	}
}

func (s Src) Name(prefix string) string {
	for {
		i := s.m[prefix] + 1
		s.m[prefix] = i
		name := prefix + strconv.Itoa(i)
		if !s.taken[name] {
			s.taken[name] = true
			return name
		}
	}
}

// Unique returns name itself the first time it is asked for, unless it
// was claimed, and falls back to Name.
func (s Src) Unique(name string) string {
	if s.taken[name] {
		return s.Name(name)
	}
	s.taken[name] = true
	return name
}
