package vscroll

// orderedStore is a type-safe, id-keyed store that remembers insertion
// order. The manager's re-stacking pass and visible-element reporting both
// iterate in the order items were tracked, which a bare map cannot provide.
//
// The execution model is single-threaded and cooperative (see Manager), so
// unlike a store shared across frames there is no locking here.
type orderedStore[T any] struct {
	values map[string]T
	order  []string
}

// newOrderedStore creates an empty store.
func newOrderedStore[T any]() *orderedStore[T] {
	return &orderedStore[T]{values: make(map[string]T)}
}

// Get returns the value for id, if present.
func (s *orderedStore[T]) Get(id string) (T, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Has reports whether id is present.
func (s *orderedStore[T]) Has(id string) bool {
	_, ok := s.values[id]
	return ok
}

// Set stores a value. A new id is appended to the iteration order; an
// existing id keeps its position.
func (s *orderedStore[T]) Set(id string, v T) {
	if _, ok := s.values[id]; !ok {
		s.order = append(s.order, id)
	}
	s.values[id] = v
}

// Delete removes an id and compacts the iteration order.
func (s *orderedStore[T]) Delete(id string) {
	if _, ok := s.values[id]; !ok {
		return
	}
	delete(s.values, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored values.
func (s *orderedStore[T]) Len() int {
	return len(s.values)
}

// Each calls fn for every value in insertion order.
func (s *orderedStore[T]) Each(fn func(id string, v T)) {
	for _, id := range s.order {
		fn(id, s.values[id])
	}
}

// Clear removes everything.
func (s *orderedStore[T]) Clear() {
	clear(s.values)
	s.order = s.order[:0]
}
