package systems

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"bead-mixer/ecs"
	"bead-mixer/generation"
	"bead-mixer/spawners"
)

func TestMessageLog(t *testing.T) {
	ml := NewMessageLog()
	ml.MaxMessages = 3

	var echo bytes.Buffer
	ml.SetEcho(&echo)

	ml.Add("one")
	ml.Addf("ERROR: %s placement skipped", "fill")
	ml.Add("three")
	ml.Add("four")

	if want := []string{"ERROR: fill placement skipped", "three", "four"}; !reflect.DeepEqual(ml.Messages, want) {
		t.Errorf("messages = %q, want %q", ml.Messages, want)
	}
	if got := ml.RecentMessages(2); !reflect.DeepEqual(got, []string{"four", "three"}) {
		t.Errorf("recent = %q", got)
	}
	if got := ml.RecentMessages(10); len(got) != 3 {
		t.Errorf("recent(10) returned %d messages, want 3", len(got))
	}
	if got := ml.Errors(); len(got) != 1 {
		t.Errorf("errors = %q, want one", got)
	}
	if got, want := echo.String(), "one\nERROR: fill placement skipped\nthree\nfour\n"; got != want {
		t.Errorf("echo = %q, want %q", got, want)
	}

	ml.Clear()
	if len(ml.Messages) != 0 {
		t.Errorf("messages after clear = %q", ml.Messages)
	}
}

func TestIsErrorMessage(t *testing.T) {
	tests := map[string]bool{
		"ERROR: outer placement skipped": true,
		"WARNING: texture missing":       true,
		"Motor spinning mixer":           false,
		"":                               false,
	}
	for msg, want := range tests {
		if got := IsErrorMessage(msg); got != want {
			t.Errorf("IsErrorMessage(%q) = %v, want %v", msg, got, want)
		}
	}
}

func TestMessageLog_WatchPlacement(t *testing.T) {
	ml := NewMessageLog()
	world := ecs.NewWorld()
	ml.WatchPlacement(world)

	world.EmitEvent(spawners.PlacementSkippedEvent{Kind: spawners.KindFill, Mode: 9, Err: generation.ErrInvalidFillMode})
	world.EmitEvent(spawners.PlacementSkippedEvent{Kind: spawners.KindOuterWall, Mode: 1, Err: errors.New("no room")})

	want := []string{
		"ERROR: fill placement skipped, packing mode 9 is not valid",
		"ERROR: outer placement failed: no room",
	}
	if !reflect.DeepEqual(ml.Messages, want) {
		t.Errorf("messages = %q, want %q", ml.Messages, want)
	}
	if len(ml.Errors()) != 2 {
		t.Errorf("errors = %q", ml.Errors())
	}
}
