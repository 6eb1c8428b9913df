package engine

import "github.com/lixenwraith/oncoarena/core"

// Store is a typed component container
// Components are held by pointer so systems mutate them in place
// Iteration order is insertion order with swap-remove, which keeps runs reproducible
type Store[T any] struct {
	components map[core.Entity]*T
	entities   []core.Entity
}

// NewStore creates an empty store for T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]*T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// Set inserts or replaces the component of e
func (s *Store[T]) Set(e core.Entity, val *T) {
	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
}

// Get returns the component of e
func (s *Store[T]) Get(e core.Entity) (*T, bool) {
	val, ok := s.components[e]
	return val, ok
}

// Has reports whether e has this component
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Remove deletes the component of e
func (s *Store[T]) Remove(e core.Entity) {
	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			last := len(s.entities) - 1
			s.entities[i] = s.entities[last]
			s.entities = s.entities[:last]
			break
		}
	}
}

// GetAllEntities returns a copy of the entity list, safe to iterate while removing
func (s *Store[T]) GetAllEntities() []core.Entity {
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Count returns the number of entities in the store
func (s *Store[T]) Count() int {
	return len(s.entities)
}

// Clear removes everything
func (s *Store[T]) Clear() {
	s.components = make(map[core.Entity]*T)
	s.entities = s.entities[:0]
}
