package analysis

import (
	"strings"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/motion"
)

type Point struct{ X, Y float64 }

// Path holds two channels of one target sampled together.
type Path struct {
	Target int
	XKey   motion.Key
	YKey   motion.Key
	Points []Point
}

// MotionPath pairs two channels of a capture. It returns nil when either
// channel is textual or the target does not exist.
func MotionPath(res *capture.Result, target int, xk, yk motion.Key) *Path {
	xs := res.Series(target, xk)
	ys := res.Series(target, yk)
	if xs == nil || ys == nil {
		return nil
	}
	p := &Path{Target: target, XKey: xk, YKey: yk, Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p
}

// PathToASCII plots the path in a width by height character grid. Screen y
// grows downward, so the y channel is drawn that way too.
func PathToASCII(path *Path, width, height int) string {
	if path == nil || len(path.Points) == 0 {
		return ""
	}

	minX, maxX := path.Points[0].X, path.Points[0].X
	minY, maxY := path.Points[0].Y, path.Points[0].Y
	for _, p := range path.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// rest position axes first so the path draws over them
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := int((0 - minY) / rangeY * float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for i, p := range path.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch i {
		case 0:
			canvas[row][col] = 'o'
		case len(path.Points) - 1:
			canvas[row][col] = '@'
		default:
			if canvas[row][col] != 'o' {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossings returns the interpolated times at which a channel passes
// through level in either direction.
func Crossings(res *capture.Result, target int, k motion.Key, level float64) []float64 {
	vals := res.Series(target, k)
	times := res.Times()
	var out []float64
	for i := 1; i < len(vals); i++ {
		a, b := vals[i-1]-level, vals[i]-level
		if a == 0 || (a < 0) == (b < 0) {
			continue
		}
		frac := a / (a - b)
		out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
	}
	return out
}
