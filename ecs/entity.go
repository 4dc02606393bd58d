package ecs

import "slices"

// EntityID identifies an entity within its world. IDs start at 1 and are never reused.
type EntityID uint64

// Entity is a scene object: a bead, the floor, the mixer, the motor or the camera
type Entity struct {
	ID   EntityID
	Name string
	tags []string
}

// HasTag reports whether the entity carries tag
func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.tags, tag)
}

func (e *Entity) addTag(tag string) bool {
	if e.HasTag(tag) {
		return false
	}
	e.tags = append(e.tags, tag)
	return true
}
