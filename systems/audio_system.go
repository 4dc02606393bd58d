package systems

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"

	"bead-mixer/ecs"
)

// AudioSystem loops an ambience track whose volume follows the motor speed events
type AudioSystem struct {
	audioContext *audio.Context
	player       *audio.Player
	file         io.Closer
	sampleRate   int

	volume   float64 // Volume at the reference speed
	refSpeed float64 // rad/s
	speed    float64 // Latest motor speed, rad/s
	paused   bool

	world *ecs.World
	subs  []ecs.Subscription
}

// NewAudioSystem creates an audio system; refSpeed is the motor speed played at full volume
func NewAudioSystem(refSpeed float64) *AudioSystem {
	sampleRate := 44100
	return &AudioSystem{
		audioContext: audio.NewContext(sampleRate),
		sampleRate:   sampleRate,
		volume:       1.0,
		refSpeed:     refSpeed,
	}
}

// Attach follows the motor speed and pause events of world, starting from
// speed, and detaches from the previously attached world. The audio system
// outlives scene rebuilds, so each new world is attached in turn.
func (s *AudioSystem) Attach(world *ecs.World, speed float64) {
	s.Detach()
	s.world = world
	s.speed = speed
	s.paused = false

	events := world.GetEventManager()
	s.subs = append(s.subs,
		events.Subscribe(EventMotorSpeed, func(e ecs.Event) {
			s.speed = e.(MotorSpeedEvent).Speed
			s.applyLevel()
		}),
		events.Subscribe(EventPause, func(e ecs.Event) {
			s.paused = e.(PauseEvent).Paused
			s.applyLevel()
		}),
	)
	s.applyLevel()
}

// Detach stops following the attached world
func (s *AudioSystem) Detach() {
	if s.world == nil {
		return
	}
	for _, sub := range s.subs {
		s.world.GetEventManager().Unsubscribe(sub)
	}
	s.subs = nil
	s.world = nil
}

// PlayLoop starts looping an mp3 or ogg file
func (s *AudioSystem) PlayLoop(path string) error {
	s.Stop()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}

	var stream interface {
		io.ReadSeeker
		Length() int64
	}
	switch filepath.Ext(path) {
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(s.sampleRate, file)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(s.sampleRate, file)
	default:
		file.Close()
		return fmt.Errorf("unsupported audio format: %s", path)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to decode audio file %s: %w", path, err)
	}

	player, err := s.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create audio player: %w", err)
	}

	s.file = file
	s.player = player
	s.player.SetVolume(s.Level())
	s.player.Play()
	return nil
}

// Level returns the loop volume for the latest motor speed; silent while paused
func (s *AudioSystem) Level() float64 {
	if s.paused {
		return 0
	}
	return VolumeForSpeed(s.volume, s.speed, s.refSpeed)
}

func (s *AudioSystem) applyLevel() {
	if s.player != nil {
		s.player.SetVolume(s.Level())
	}
}

// VolumeForSpeed scales volume by |speed|/refSpeed, capped at volume
func VolumeForSpeed(volume, speed, refSpeed float64) float64 {
	if refSpeed == 0 {
		return volume
	}
	return volume * math.Min(1, math.Abs(speed/refSpeed))
}

// Stop stops and releases the ambience loop
func (s *AudioSystem) Stop() {
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
}

// IsPlaying returns whether the ambience loop is playing
func (s *AudioSystem) IsPlaying() bool {
	return s.player != nil && s.player.IsPlaying()
}

// Close detaches from the world and releases the ambience loop
func (s *AudioSystem) Close() {
	s.Detach()
	s.Stop()
}
