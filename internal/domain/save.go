package domain

// Save is an explicit create-or-update command. Callers state their intent
// with Create or Update instead of relying on the payload's shape.
type Save[T any] struct {
	id      string
	update  bool
	Payload T
}

// Create returns a command that creates a new entity from payload.
func Create[T any](payload T) Save[T] {
	return Save[T]{Payload: payload}
}

// Update returns a command that merges payload into the entity with the given id.
func Update[T any](id string, payload T) Save[T] {
	return Save[T]{id: id, update: true, Payload: payload}
}

// IsUpdate reports whether the command targets an existing entity.
func (s Save[T]) IsUpdate() bool { return s.update }

// ID returns the target id of an update command, or "" for a create.
func (s Save[T]) ID() string { return s.id }
