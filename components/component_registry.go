package components

import (
	"sort"

	"bead-mixer/ecs"
)

// componentNameMap maps component names to their IDs
var componentNameMap = map[string]ecs.ComponentID{
	"Body":       Body,
	"Renderable": Renderable,
	"Motor":      Motor,
	"Lock":       Lock,
	"Camera":     Camera,
}

// ComponentCount is the number of entities carrying one component type
type ComponentCount struct {
	Name  string
	Count int
}

// CountComponents tallies the registered components present in world, sorted by name
func CountComponents(world *ecs.World) []ComponentCount {
	counts := make([]ComponentCount, 0, len(componentNameMap))
	for name, id := range componentNameMap {
		counts = append(counts, ComponentCount{Name: name, Count: len(world.GetEntitiesWithComponent(id))})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Name < counts[j].Name })
	return counts
}
