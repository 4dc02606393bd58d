package ecs

// World manages all entities and components
type World struct {
	entities map[EntityID]*Entity
	// Creation order, so systems see bodies in the order they were placed
	order []EntityID
	// Store components as map[EntityID]map[ComponentID]Component
	components map[EntityID]ComponentMap
	systems    []System
	// Tag-based entity lookup for quick access
	entityTags   map[string]map[EntityID]bool
	eventManager *EventManager
	nextID       EntityID
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	return &World{
		entities:     make(map[EntityID]*Entity),
		components:   make(map[EntityID]ComponentMap),
		systems:      make([]System, 0),
		entityTags:   make(map[string]map[EntityID]bool),
		eventManager: NewEventManager(),
	}
}

// CreateEntity creates a new entity and adds it to the world
func (w *World) CreateEntity() *Entity {
	w.nextID++
	entity := &Entity{ID: w.nextID}
	w.entities[entity.ID] = entity
	w.order = append(w.order, entity.ID)
	w.components[entity.ID] = make(ComponentMap)
	return entity
}

// AddComponent adds a component to an entity
func (w *World) AddComponent(entityID EntityID, componentID ComponentID, component Component) {
	if _, exists := w.entities[entityID]; !exists {
		return
	}
	w.components[entityID][componentID] = component
}

// GetComponent retrieves a component from an entity
func (w *World) GetComponent(entityID EntityID, componentID ComponentID) (Component, bool) {
	if componentMap, exists := w.components[entityID]; exists {
		component, exists := componentMap[componentID]
		return component, exists
	}
	return nil, false
}

// AddSystem adds a system to the world
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
}

// Update runs every registered system in registration order
func (w *World) Update(dt float64) {
	for _, system := range w.systems {
		system.Update(w, dt)
	}
}

// GetSystems returns all systems registered in the world
func (w *World) GetSystems() []System {
	return w.systems
}

// TagEntity adds a tag to an entity and updates the tag lookup
func (w *World) TagEntity(entityID EntityID, tag string) {
	entity, exists := w.entities[entityID]
	if !exists {
		return
	}

	if !entity.addTag(tag) {
		return
	}
	if _, exists := w.entityTags[tag]; !exists {
		w.entityTags[tag] = make(map[EntityID]bool)
	}
	w.entityTags[tag][entityID] = true
}

// GetEntitiesWithTag returns all entities with a specific tag, in creation order
func (w *World) GetEntitiesWithTag(tag string) []*Entity {
	tagged, exists := w.entityTags[tag]
	if !exists {
		return nil
	}

	entities := make([]*Entity, 0, len(tagged))
	for _, id := range w.order {
		if tagged[id] {
			entities = append(entities, w.entities[id])
		}
	}
	return entities
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	return len(w.order)
}

// GetEventManager returns the world's event manager
func (w *World) GetEventManager() *EventManager {
	return w.eventManager
}

// EmitEvent is a convenience method to emit an event
func (w *World) EmitEvent(event Event) {
	w.eventManager.Emit(event)
}

// GetEntitiesWithComponent returns all entities that have a specific component, in creation order
func (w *World) GetEntitiesWithComponent(componentID ComponentID) []*Entity {
	entities := make([]*Entity, 0)
	for _, id := range w.order {
		if _, ok := w.components[id][componentID]; ok {
			entities = append(entities, w.entities[id])
		}
	}
	return entities
}
