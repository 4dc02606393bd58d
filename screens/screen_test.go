package screens

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"bead-mixer/config"
	"bead-mixer/data"
	"bead-mixer/systems"
)

type stubScreen struct {
	BaseScreen
	err     error
	updates int
}

func (s *stubScreen) Update() error {
	s.updates++
	return s.err
}

func TestScreenStack(t *testing.T) {
	stack := NewScreenStack()
	if stack.Peek() != nil || stack.Pop() != nil {
		t.Fatal("empty stack returned a screen")
	}
	if err := stack.Update(); err != nil {
		t.Fatalf("empty stack update: %v", err)
	}

	bottom := &stubScreen{}
	closing := &stubScreen{err: ErrCloseScreen}
	stack.Push(bottom)
	stack.Push(closing)

	if err := stack.Update(); err != nil {
		t.Errorf("close request surfaced as %v", err)
	}
	if stack.Peek() != bottom || stack.Len() != 1 {
		t.Errorf("closing screen not popped, len %d", stack.Len())
	}
	if bottom.updates != 0 {
		t.Error("screen below the top was updated")
	}

	rebuild := &stubScreen{err: ErrRebuild}
	stack.Replace(rebuild)
	if stack.Len() != 1 || stack.Peek() != rebuild {
		t.Fatalf("replace left len %d", stack.Len())
	}
	if err := stack.Update(); !errors.Is(err, ErrRebuild) {
		t.Errorf("err = %v, want ErrRebuild", err)
	}

	if w, h := stack.Layout(1, 1); w != config.WindowWidth || h != config.WindowHeight {
		t.Errorf("layout = %dx%d", w, h)
	}
}

func TestStartScreen_Selection(t *testing.T) {
	presets := data.NewPresetManager()
	presets.Presets["small"] = &data.ScenePreset{ID: "small", Scene: config.DefaultScene()}
	presets.Presets["drop"] = &data.ScenePreset{ID: "drop", Scene: config.DefaultScene()}

	s := NewStartScreen(config.DefaultScene(), presets)
	if got := s.Selected(); got != DefaultSceneOption {
		t.Errorf("initial selection = %q", got)
	}

	s.Move(1)
	if got := s.Selected(); got != "drop" {
		t.Errorf("after one step selection = %q, want drop", got)
	}
	s.Move(-2)
	if got := s.Selected(); got != "small" {
		t.Errorf("wrapped selection = %q, want small", got)
	}
}

func TestStartScreen_DescriptionsFollowConfig(t *testing.T) {
	small := config.DefaultScene()
	small.OuterRadius = 6
	small.InnerRadius = 3
	small.Height = 3
	small.FillHeight = 4

	presets := data.NewPresetManager()
	presets.Presets["small"] = &data.ScenePreset{ID: "small", Description: "Tiny mixer", Scene: small}

	def := config.DefaultScene()
	def.MotorSpeed = 2.5
	s := NewStartScreen(def, presets)

	if want := plannedBeads(def); !strings.HasPrefix(s.descriptions[0], fmt.Sprintf("%d beads", want)) {
		t.Errorf("default description = %q, want %d beads", s.descriptions[0], want)
	}
	if !strings.Contains(s.descriptions[0], "2.5 rad/s") {
		t.Errorf("default description = %q, want the motor speed", s.descriptions[0])
	}
	if want := fmt.Sprintf("Tiny mixer, %d beads", plannedBeads(small)); s.descriptions[1] != want {
		t.Errorf("preset description = %q, want %q", s.descriptions[1], want)
	}

	broken := small
	broken.OuterMode, broken.InnerMode, broken.FillMode = 7, 7, 7
	if n := plannedBeads(broken); n != 0 {
		t.Errorf("invalid modes still plan %d beads", n)
	}
	if plannedBeads(small) >= plannedBeads(def) {
		t.Errorf("small scene plans %d beads, default %d", plannedBeads(small), plannedBeads(def))
	}
}

func TestMessageScreen_ScrollKeepsPageInView(t *testing.T) {
	log := systems.GetMessageLog()
	log.Clear()
	defer log.Clear()

	s := NewMessageScreen()
	s.Scroll(5)
	if s.scrollOffset != 0 {
		t.Errorf("offset with an empty log = %d, want 0", s.scrollOffset)
	}

	for i := 0; i < s.visibleLines()+3; i++ {
		log.Addf("message %d", i)
	}
	s.Scroll(10)
	if s.scrollOffset != 3 {
		t.Errorf("offset = %d, want 3", s.scrollOffset)
	}
	s.Scroll(-10)
	if s.scrollOffset != 0 {
		t.Errorf("offset = %d, want 0", s.scrollOffset)
	}
}

func TestHelpScreen_ListsEveryControl(t *testing.T) {
	s := NewHelpScreen()
	for _, c := range Controls {
		if !strings.Contains(s.content, c[1]) {
			t.Errorf("help misses %q", c[1])
		}
	}
}
