package export

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/easing"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/viz"
)

const background = "#0a0a0f"

// CanvasToSVG converts a Braille canvas to SVG dots of one colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", fill)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if canvas.Lit(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// StageSVG draws the visible targets as filled polygons with their fill
// colour, opacity and glow.
func StageSVG(styles []motion.Style, stagger bool, width, height int) string {
	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	writeStage(&sb, styles, stagger, 0, 0, float64(width), float64(height), "s")
	sb.WriteString("</svg>")
	return sb.String()
}

// FilmstripSVG lays out evenly spaced frames of a capture left to right,
// each labelled with its time.
func FilmstripSVG(res *capture.Result, stagger bool, cells, cellWidth int) string {
	if res == nil || len(res.Frames) == 0 || cells < 1 {
		return ""
	}
	if cells > len(res.Frames) {
		cells = len(res.Frames)
	}
	cw := float64(cellWidth)
	ch := cw * viz.StageHeight / viz.StageWidth

	var sb strings.Builder
	header(&sb, cw*float64(cells), ch+20)
	for i := 0; i < cells; i++ {
		idx := 0
		if cells > 1 {
			idx = i * (len(res.Frames) - 1) / (cells - 1)
		}
		f := res.Frames[idx]
		x0 := cw * float64(i)
		fmt.Fprintf(&sb, "<rect x=\"%.1f\" y=\"0\" width=\"%.1f\" height=\"%.1f\" fill=\"none\" stroke=\"#222233\"/>\n", x0, cw, ch)
		writeStage(&sb, f.Styles, stagger, x0, 0, cw, ch, fmt.Sprintf("f%d", i))
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"#888899\" font-family=\"monospace\" font-size=\"11\" text-anchor=\"middle\">%.2fs</text>\n",
			x0+cw/2, ch+14, f.Time)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func writeStage(sb *strings.Builder, styles []motion.Style, stagger bool, x0, y0, w, h float64, id string) {
	faces, centers := viz.Faces(styles, stagger)
	k := min(w/viz.StageWidth, h/viz.StageHeight)
	for i, f := range faces {
		if f.Style.Opacity <= 0 {
			continue
		}
		pts := f.Project(centers[i])
		var d strings.Builder
		for j, p := range pts {
			cmd := "L"
			if j == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&d, "%s%.1f,%.1f ", cmd, x0+w/2+p.X*k, y0+h/2+p.Y*k)
		}
		d.WriteString("Z")

		sh := f.Style.Shadow
		filter := ""
		if sh.Alpha > 0 && sh.Blur > 0 {
			fid := fmt.Sprintf("glow-%s-%d", id, i)
			fmt.Fprintf(sb, "<defs><filter id=\"%s\" x=\"-50%%\" y=\"-50%%\" width=\"200%%\" height=\"200%%\"><feDropShadow dx=\"%.1f\" dy=\"%.1f\" stdDeviation=\"%.1f\" flood-color=\"%s\" flood-opacity=\"%.2f\"/></filter></defs>\n",
				fid, sh.X*k, sh.Y*k, sh.Blur*k/2, sh.Color.Clamped().Hex(), sh.Alpha)
			filter = fmt.Sprintf(" filter=\"url(#%s)\"", fid)
		}
		fmt.Fprintf(sb, "<path d=\"%s\" fill=\"%s\" fill-opacity=\"%.3f\"%s/>\n",
			d.String(), f.Style.Fill.Clamped().Hex(), f.Style.Opacity, filter)
	}
}

// CurveSVG plots an easing curve over progress 0..1, with guides at the
// start and end values so overshoot is visible.
func CurveSVG(fn ease.TweenFunc, width, height int, strokeColor string) string {
	ys := easing.Sample(fn, width)
	points := make([]struct{ X, Y float64 }, len(ys))
	for i, y := range ys {
		points[i] = struct{ X, Y float64 }{float64(i) / float64(len(ys)-1), y}
	}
	return TrajectoryToSVG(points, width, height, strokeColor, 0, 1)
}

// SeriesSVG plots a numeric capture series against time.
func SeriesSVG(times, values []float64, width, height int, strokeColor string) string {
	n := min(len(times), len(values))
	points := make([]struct{ X, Y float64 }, n)
	for i := 0; i < n; i++ {
		points[i] = struct{ X, Y float64 }{times[i], values[i]}
	}
	return TrajectoryToSVG(points, width, height, strokeColor)
}

// TrajectoryToSVG draws a polyline through points. Each guide value gets a
// dashed horizontal line.
func TrajectoryToSVG(points []struct{ X, Y float64 }, width, height int, strokeColor string, guides ...float64) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	for _, g := range guides {
		minY, maxY = min(minY, g), max(maxY, g)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	for _, g := range guides {
		fmt.Fprintf(&sb, "<line x1=\"0\" y1=\"%.1f\" x2=\"%d\" y2=\"%.1f\" stroke=\"#333344\" stroke-dasharray=\"4 4\"/>\n",
			py(g), width, py(g))
	}
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", strokeColor)
	for i, p := range points {
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", px(p.X), py(p.Y))
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}
