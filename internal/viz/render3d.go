package viz

import (
	"math"
	"sort"
	"strings"

	"github.com/san-kum/easelab/internal/motion"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Rotations use screen coordinates: y points down, positive angles are
// clockwise on screen, matching CSS transforms.
func (v Vec3) RotateX(deg float64) Vec3 {
	c, s := cosSin(deg)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

func (v Vec3) RotateY(deg float64) Vec3 {
	c, s := cosSin(deg)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func (v Vec3) RotateZ(deg float64) Vec3 {
	c, s := cosSin(deg)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

func cosSin(deg float64) (float64, float64) {
	r := deg * math.Pi / 180
	return math.Cos(r), math.Sin(r)
}

// Point is a projected stage position in CSS pixels, relative to the stage
// centre.
type Point struct{ X, Y float64 }

// Face is a transformed target outline.
type Face struct {
	Corners [4]Vec3
	Style   motion.Style
}

// Depth is the mean z of the face; larger is closer to the viewer.
func (f Face) Depth() float64 {
	var z float64
	for _, c := range f.Corners {
		z += c.Z
	}
	return z / 4
}

// Project applies the target's own perspective around its centre.
func (f Face) Project(center Vec3) [4]Point {
	var out [4]Point
	p := f.Style.Perspective
	for i, c := range f.Corners {
		rel := c.Sub(center)
		k := 1.0
		if p > 0 && rel.Z < p {
			k = p / (p - rel.Z)
		}
		out[i] = Point{center.X + rel.X*k, center.Y + rel.Y*k}
	}
	return out
}

// origin resolves a transform-origin keyword pair to an offset from the
// element centre.
func origin(text string, size float64) Vec3 {
	var o Vec3
	for _, word := range strings.Fields(text) {
		switch word {
		case "left":
			o.X = -size / 2
		case "right":
			o.X = size / 2
		case "top":
			o.Y = -size / 2
		case "bottom":
			o.Y = size / 2
		}
	}
	return o
}

// TargetFace transforms a square of the given size centred on center the
// way a browser applies translate, rotate, rotateY, rotateX and scale.
func TargetFace(s motion.Style, center Vec3, size float64) Face {
	h := size / 2
	o := origin(s.Origin, size)
	corners := [4]Vec3{{-h, -h, 0}, {h, -h, 0}, {h, h, 0}, {-h, h, 0}}
	f := Face{Style: s}
	for i, c := range corners {
		p := c.Sub(o)
		p = Vec3{p.X * s.ScaleX, p.Y * s.ScaleY, p.Z}
		p = p.RotateX(s.RotateX).RotateY(s.RotateY).RotateZ(s.Rotation)
		p = p.Add(o).Add(Vec3{s.X, s.Y, 0})
		f.Corners[i] = p.Add(center)
	}
	return f
}

// Camera maps stage pixels onto canvas sub-pixels.
type Camera struct {
	Width, Height float64
	Zoom          float64
}

func NewCamera() *Camera {
	return &Camera{Width: StageWidth, Height: StageHeight, Zoom: 1}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(4, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.25, c.Zoom/1.2) }

// Scale is the number of sub-pixels per stage pixel.
func (c *Camera) Scale(sw, sh int) float64 {
	return math.Min(float64(sw)/c.Width, float64(sh)/c.Height) * c.Zoom
}

// Project converts a stage point to canvas sub-pixel coordinates.
func (c *Camera) Project(p Point, sw, sh int) (int, int) {
	k := c.Scale(sw, sh)
	return int(math.Round(p.X*k)) + sw/2, int(math.Round(p.Y*k)) + sh/2
}

// Render3D paints faces back to front.
func Render3D(cv *Canvas, faces []Face, cam *Camera, centers []Vec3) {
	if cv == nil || cam == nil {
		return
	}
	sw, sh := cv.Width*2, cv.Height*4
	order := make([]int, len(faces))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return faces[order[a]].Depth() < faces[order[b]].Depth() })

	for _, i := range order {
		f := faces[i]
		if f.Style.Opacity < 0.05 {
			continue
		}
		pts := f.Project(centers[i])
		var xs, ys [4]int
		for j, p := range pts {
			xs[j], ys[j] = cam.Project(p, sw, sh)
		}
		cv.FillQuad(xs, ys, f.Style.Opacity)
		for j := 0; j < 4; j++ {
			k := (j + 1) % 4
			cv.DrawLine(xs[j], ys[j], xs[k], ys[k])
		}
	}
}
