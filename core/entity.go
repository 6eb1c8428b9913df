package core

// Entity is a unique identifier for an entity in the world
// Zero is never issued and marks "no entity"
type Entity uint64

// Valid reports whether e refers to an issued entity id
func (e Entity) Valid() bool {
	return e != 0
}
