// Package tui prints captured playback straight to the terminal, frame by
// frame, without taking over the screen.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/viz"
)

const (
	width       = 64
	height      = 18
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws capture frames as they are sampled. Frames arrive
// faster than real time, so it sleeps to keep playback at wall-clock pace
// and drops frames above the frame rate.
type LiveRenderer struct {
	out       io.Writer
	title     string
	frameRate int
	canvas    *viz.Canvas
	camera    *viz.Camera
	start     time.Time
	lastFrame float64
	drawn     int

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		canvas:    viz.NewCanvas(width, height),
		camera:    viz.NewCamera(),
		lastFrame: -1,
		sleep:     time.Sleep,
	}
}

func (r *LiveRenderer) OnFrame(f capture.Frame, stagger bool) {
	if r.lastFrame >= 0 && f.Time-r.lastFrame < 1/float64(r.frameRate) {
		return
	}
	if r.start.IsZero() {
		r.start = time.Now()
	}
	if ahead := time.Duration(f.Time*float64(time.Second)) - time.Since(r.start); ahead > 0 {
		r.sleep(ahead)
	}
	r.lastFrame = f.Time
	r.drawn++

	viz.DrawStage(r.canvas, r.camera, f.Styles, stagger)
	r.render(f, stagger)
}

// Drawn reports how many frames reached the terminal.
func (r *LiveRenderer) Drawn() int { return r.drawn }

func (r *LiveRenderer) render(f capture.Frame, stagger bool) {
	lead := motion.Baseline()
	if len(f.Styles) > 0 {
		lead = f.Styles[0]
	}
	if stagger && len(f.Styles) > 1 {
		lead = f.Styles[1]
	}
	paint := lipgloss.NewStyle().Foreground(lipgloss.Color(lead.Fill.Clamped().Hex()))

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs\n", r.title, f.Time))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range strings.Split(strings.TrimRight(r.canvas.String(), "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(paint.Render(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  x=%.1f y=%.1f scale=%.2f/%.2f rot=%.1f opacity=%.2f\n",
		lead.X, lead.Y, lead.ScaleX, lead.ScaleY, lead.Rotation, lead.Opacity))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
