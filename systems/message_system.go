package systems

import (
	"fmt"
	"io"
	"strings"

	"bead-mixer/ecs"
	"bead-mixer/spawners"
)

// MessageLog stores runtime messages shown in the message panel
type MessageLog struct {
	Messages    []string
	MaxMessages int

	echo io.Writer // Optional copy of every message, one per line
}

// Global message log instance (singleton)
var globalMessageLog *MessageLog

// GetMessageLog returns the global message log instance
func GetMessageLog() *MessageLog {
	if globalMessageLog == nil {
		globalMessageLog = NewMessageLog()
	}
	return globalMessageLog
}

// NewMessageLog creates a new message log
func NewMessageLog() *MessageLog {
	return &MessageLog{
		Messages:    []string{},
		MaxMessages: 200,
	}
}

// SetEcho copies every following message to w; nil stops echoing
func (ml *MessageLog) SetEcho(w io.Writer) {
	ml.echo = w
}

// Add adds a message to the log
func (ml *MessageLog) Add(message string) {
	ml.Messages = append(ml.Messages, message)

	if len(ml.Messages) > ml.MaxMessages {
		ml.Messages = ml.Messages[len(ml.Messages)-ml.MaxMessages:]
	}
	if ml.echo != nil {
		fmt.Fprintln(ml.echo, message)
	}
}

// Addf formats and adds a message
func (ml *MessageLog) Addf(format string, args ...any) {
	ml.Add(fmt.Sprintf(format, args...))
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []string {
	if n > len(ml.Messages) {
		n = len(ml.Messages)
	}

	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = ml.Messages[len(ml.Messages)-1-i]
	}

	return result
}

// Errors returns the messages reporting errors, oldest first
func (ml *MessageLog) Errors() []string {
	var errs []string
	for _, msg := range ml.Messages {
		if IsErrorMessage(msg) {
			errs = append(errs, msg)
		}
	}
	return errs
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.Messages = []string{}
}

// IsErrorMessage reports whether msg is an error or warning line
func IsErrorMessage(msg string) bool {
	return strings.HasPrefix(msg, "ERROR") || strings.HasPrefix(msg, "WARNING")
}

// WatchPlacement logs every PlacementSkippedEvent emitted in world as an error
func (ml *MessageLog) WatchPlacement(world *ecs.World) ecs.Subscription {
	return world.GetEventManager().Subscribe(spawners.EventPlacementSkipped, func(e ecs.Event) {
		skip := e.(spawners.PlacementSkippedEvent)
		if skip.InvalidMode() {
			ml.Addf("ERROR: %s placement skipped, packing mode %d is not valid", skip.Kind, skip.Mode)
			return
		}
		ml.Addf("ERROR: %s placement failed: %v", skip.Kind, skip.Err)
	})
}
