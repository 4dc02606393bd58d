package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"bead-mixer/config"
	"bead-mixer/data"
	"bead-mixer/screens"
	"bead-mixer/systems"
)

// Game implements ebiten.Game interface.
type Game struct {
	screenStack  *screens.ScreenStack
	startScreen  *screens.StartScreen
	presets      *data.PresetManager
	cfg          config.Scene
	sim          *Simulation
	textures     *systems.Textures
	audioSystem  *systems.AudioSystem
	ambiencePath string
}

// NewGame creates the viewer. With presets to choose from it opens on the
// scene menu, otherwise it builds cfg right away. textureDir may hold image
// files replacing the generated bead sprites.
func NewGame(cfg config.Scene, presets *data.PresetManager, ambiencePath, textureDir string) (*Game, error) {
	g := &Game{
		screenStack:  screens.NewScreenStack(),
		presets:      presets,
		cfg:          cfg,
		textures:     systems.NewTextures(),
		ambiencePath: ambiencePath,
	}

	if textureDir != "" {
		n, err := g.textures.LoadDir(textureDir)
		if err != nil {
			return nil, err
		}
		systems.GetMessageLog().Addf("Loaded %d textures from %s", n, textureDir)
	}

	if ambiencePath != "" {
		g.audioSystem = systems.NewAudioSystem(cfg.MotorSpeed)
	}

	if presets != nil && len(presets.Presets) > 0 {
		g.startScreen = screens.NewStartScreen(cfg, presets)
		g.screenStack.Push(g.startScreen)
		return g, nil
	}
	if err := g.start(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// start builds cfg and shows it, replacing the current screen
func (g *Game) start(cfg config.Scene) error {
	sim, err := NewSimulation(cfg)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.sim = sim
	sim.PrintLastBead(os.Stdout)

	renderSystem := systems.NewRenderSystem(sim.World, g.textures)
	renderSystem.Backend = cfg.Backend
	renderSystem.SetCameraSystem(sim.Camera)

	if g.audioSystem != nil {
		g.audioSystem.Attach(sim.World, sim.Motor.Speed())
		if !g.audioSystem.IsPlaying() {
			if err := g.audioSystem.PlayLoop(g.ambiencePath); err != nil {
				systems.GetMessageLog().Add("WARNING: " + err.Error())
			}
		}
	}

	g.screenStack.Replace(screens.NewSimulationScreen(sim.World, sim.Physics, sim.Motor, sim.Camera, renderSystem))
	systems.GetMessageLog().Add("Press H for the controls")
	return nil
}

// selectedScene returns the configuration chosen on the start screen
func (g *Game) selectedScene() (config.Scene, error) {
	id := g.startScreen.Selected()
	if id == screens.DefaultSceneOption {
		return g.cfg, nil
	}
	preset, ok := g.presets.Get(id)
	if !ok {
		return config.Scene{}, fmt.Errorf("unknown preset %q", id)
	}
	return preset.Scene, nil
}

// Update updates the game state.
func (g *Game) Update() error {
	err := g.screenStack.Update()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, screens.ErrStartScene):
		cfg, err := g.selectedScene()
		if err != nil {
			return err
		}
		systems.GetMessageLog().Addf("Starting scene %q", g.startScreen.Selected())
		return g.start(cfg)
	case errors.Is(err, screens.ErrRebuild):
		systems.GetMessageLog().Add("Rebuilding scene")
		return g.start(g.cfg)
	default:
		return err
	}
}

// Draw draws the game screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.screenStack.Draw(screen)
}

// Layout implements ebiten.Game's Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenStack.Layout(outsideWidth, outsideHeight)
}

// Close releases the audio device
func (g *Game) Close() {
	if g.audioSystem != nil {
		g.audioSystem.Close()
	}
}
