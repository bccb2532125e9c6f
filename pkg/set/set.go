package set

// Ordered is a set that remembers insertion order. Adding an existing item
// keeps its original position.
type Ordered[T comparable] struct {
	seen  map[T]struct{}
	items []T
}

func NewOrdered[T comparable](items ...T) *Ordered[T] {
	s := &Ordered[T]{seen: make(map[T]struct{}, len(items))}
	s.Add(items...)
	return s
}

func (s *Ordered[T]) Add(item ...T) {
	for _, i := range item {
		if _, ok := s.seen[i]; ok {
			continue
		}
		s.seen[i] = struct{}{}
		s.items = append(s.items, i)
	}
}

// Slice returns the items in insertion order.
func (s *Ordered[T]) Slice() []T {
	return append([]T(nil), s.items...)
}
