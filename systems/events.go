package systems

import (
	"bead-mixer/ecs"
)

// Event type constants
const (
	EventFrameAdvanced ecs.EventType = "frame_advanced"
	EventPause         ecs.EventType = "pause"
	EventMotorSpeed    ecs.EventType = "motor_speed"
	EventCameraUpdate  ecs.EventType = "camera_update"
)

// FrameAdvancedEvent is emitted after the physics system has caught up with a frame
type FrameAdvancedEvent struct {
	Time    float64 // Simulated time reached
	OutTime float64 // Time the next frame will advance to
	Steps   int     // Sub-steps taken during this frame
}

// Type returns the event type
func (e FrameAdvancedEvent) Type() ecs.EventType {
	return EventFrameAdvanced
}

// PauseEvent is emitted when the simulation is paused or resumed
type PauseEvent struct {
	Paused bool
}

// Type returns the event type
func (e PauseEvent) Type() ecs.EventType {
	return EventPause
}

// MotorSpeedEvent is emitted when a motor gets a new constant speed
type MotorSpeedEvent struct {
	MotorID ecs.EntityID
	Speed   float64 // rad/s
}

// Type returns the event type
func (e MotorSpeedEvent) Type() ecs.EventType {
	return EventMotorSpeed
}

// CameraUpdateEvent is emitted when the orbit camera moves
type CameraUpdateEvent struct {
	CameraID ecs.EntityID
	Yaw      float64
	Pitch    float64
	Distance float64
}

// Type returns the event type
func (e CameraUpdateEvent) Type() ecs.EventType {
	return EventCameraUpdate
}
