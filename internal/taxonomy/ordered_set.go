package taxonomy

// OrderedSet is a set of names that remembers insertion order. The zero
// value is ready to use.
type OrderedSet struct {
	names []string
	index map[string]struct{}
}

// NewOrderedSet returns a set seeded with names, skipping duplicates.
func NewOrderedSet(names ...string) *OrderedSet {
	s := &OrderedSet{}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add appends name if it is not already present and reports whether it was
// added. Comparison is case-sensitive.
func (s *OrderedSet) Add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

func (s *OrderedSet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *OrderedSet) Len() int { return len(s.names) }

// Values returns a copy of the names in insertion order.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
