package components

import (
	"bead-mixer/ecs"
)

// Component IDs used by the mixer scene
const (
	Body       ecs.ComponentID = iota // *BodyComponent
	Renderable                        // *RenderableComponent
	Motor                             // *MotorComponent
	Lock                              // *LockComponent
	Camera                            // *CameraComponent
)
