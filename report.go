package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"bead-mixer/components"
	"bead-mixer/spawners"
	"bead-mixer/systems"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	frame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	header = cyan.Bold(true)
)

// Summary describes the state of a simulation after a headless run
type Summary struct {
	Backend string
	Time    float64
	Steps   int

	InnerWall int
	OuterWall int
	Fill      int
	Hidden    int

	KineticEnergy float64 // Of the loose beads
	MeanHeight    float64 // Of the loose beads
	MaxHeight     float64
	Escaped       int // Loose beads outside the annulus or under the floor

	MotorSpeed float64 // rad/s
	MixerAngle float64 // degrees

	Entities   int
	Components []components.ComponentCount

	Errors []string
}

// Summarize measures the loose beads of sim
func Summarize(sim *Simulation) Summary {
	cfg := sim.Config
	sc := sim.Scene
	s := Summary{
		Backend:    cfg.Backend,
		Time:       sim.Physics.Time(),
		Steps:      sim.Physics.TotalSteps(),
		InnerWall:  len(sc.InnerWall),
		OuterWall:  len(sc.OuterWall),
		Fill:       len(sc.Fill),
		MotorSpeed: sim.Motor.Speed(),
		MixerAngle: mgl64.RadToDeg(sim.Motor.MixerAngle()),
		Entities:   sim.World.EntityCount(),
		Components: components.CountComponents(sim.World),
		Errors:     systems.GetMessageLog().Errors(),
	}

	r := cfg.BeadRadius
	total := 0.0
	for _, entity := range sc.Fill {
		body := spawners.BodyOf(sim.World, entity)
		if body == nil {
			continue
		}
		if body.Hidden {
			s.Hidden++
			continue
		}
		y := body.Position.Y()
		total += y
		s.MaxHeight = math.Max(s.MaxHeight, y)
		s.KineticEnergy += body.KineticEnergy()

		radial := math.Hypot(body.Position.X(), body.Position.Z())
		if radial < cfg.InnerRadius-r || radial > cfg.OuterRadius+r || y < -r {
			s.Escaped++
		}
	}
	if n := s.Fill - s.Hidden; n > 0 {
		s.MeanHeight = total / float64(n)
	}
	return s
}

// RenderReport formats a summary as a framed terminal table
func RenderReport(s Summary) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(dim.Render(fmt.Sprintf("%-16s", label)) + white.Render(value) + "\n")
	}

	b.WriteString(header.Render("bead mixer") + "  " + dim.Render(s.Backend+" backend") + "\n\n")
	row("time", fmt.Sprintf("%.3f s (%d steps)", s.Time, s.Steps))
	row("motor", fmt.Sprintf("%.3f rad/s, mixer at %.1f deg", s.MotorSpeed, s.MixerAngle))
	row("beads", fmt.Sprintf("%d outer, %d inner, %d fill", s.OuterWall, s.InnerWall, s.Fill))
	if s.Hidden > 0 {
		row("out of plane", fmt.Sprintf("%d fill beads", s.Hidden))
	}
	row("fill height", fmt.Sprintf("mean %.3f, max %.3f", s.MeanHeight, s.MaxHeight))
	row("kinetic energy", fmt.Sprintf("%.4g J", s.KineticEnergy))

	escaped := fmt.Sprintf("%d", s.Escaped)
	if s.Escaped > 0 {
		escaped = red.Render(escaped)
	}
	b.WriteString(dim.Render(fmt.Sprintf("%-16s", "escaped")) + escaped + "\n")

	parts := make([]string, 0, len(s.Components))
	for _, c := range s.Components {
		parts = append(parts, fmt.Sprintf("%s %d", c.Name, c.Count))
	}
	row("entities", fmt.Sprintf("%d (%s)", s.Entities, strings.Join(parts, ", ")))

	for _, e := range s.Errors {
		b.WriteString("\n" + red.Render(e))
	}

	return frame.Render(strings.TrimRight(b.String(), "\n"))
}
