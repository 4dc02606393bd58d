package ecs

// ComponentID is a unique identifier for component types
type ComponentID uint

// Component is the base interface for all components
type Component any

// ComponentMap stores components by their type ID
type ComponentMap map[ComponentID]Component

// System processes entities once per simulation frame
type System interface {
	// Update is called each frame; dt is the simulated time the frame covers
	Update(world *World, dt float64)
}

// GetTyped fetches a component and asserts its concrete type
func GetTyped[T any](w *World, entityID EntityID, componentID ComponentID) (T, bool) {
	var zero T
	comp, ok := w.GetComponent(entityID, componentID)
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}
