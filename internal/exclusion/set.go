package exclusion

// mapSet implements Set using a map for O(1) lookups.
type mapSet struct {
	numbers map[int64]struct{}
}

// NewSet creates a Set from a slice of excluded order numbers.
func NewSet(orderNumbers []int64) Set {
	s := &mapSet{
		numbers: make(map[int64]struct{}, len(orderNumbers)),
	}
	for _, n := range orderNumbers {
		s.numbers[n] = struct{}{}
	}
	return s
}

// Contains checks if an order number is excluded.
func (s *mapSet) Contains(orderNumber int64) bool {
	_, exists := s.numbers[orderNumber]
	return exists
}

// Size returns the number of excluded order numbers.
func (s *mapSet) Size() int {
	return len(s.numbers)
}

// add inserts an order number into the set.
func (s *mapSet) add(orderNumber int64) {
	s.numbers[orderNumber] = struct{}{}
}
