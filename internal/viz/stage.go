package viz

import (
	"github.com/san-kum/easelab/internal/motion"
)

// Stage geometry in CSS pixels.
const (
	StageWidth  = 640
	StageHeight = 400
	BoxSize     = 128
	ItemSize    = 64
	ItemGap     = 24
	GridSize    = 40
)

// Layout returns the resting centre of every target, box first, relative to
// the stage centre. The box and the items share the centre row; only one
// group is shown at a time.
func Layout(items int) []Vec3 {
	out := []Vec3{{}}
	span := float64(items*ItemSize + (items-1)*ItemGap)
	for i := 0; i < items; i++ {
		x := -span/2 + ItemSize/2 + float64(i*(ItemSize+ItemGap))
		out = append(out, Vec3{X: x})
	}
	return out
}

// Faces transforms the visible targets. styles holds the box followed by the
// items; stagger selects the item group instead of the box.
func Faces(styles []motion.Style, stagger bool) ([]Face, []Vec3) {
	if len(styles) == 0 {
		return nil, nil
	}
	layout := Layout(len(styles) - 1)
	var faces []Face
	var centers []Vec3
	if !stagger {
		faces = append(faces, TargetFace(styles[0], layout[0], BoxSize))
		centers = append(centers, layout[0])
		return faces, centers
	}
	for i := 1; i < len(styles); i++ {
		faces = append(faces, TargetFace(styles[i], layout[i], ItemSize))
		centers = append(centers, layout[i])
	}
	return faces, centers
}

// DrawStage renders the stage crosshair and the visible targets.
func DrawStage(cv *Canvas, cam *Camera, styles []motion.Style, stagger bool) {
	cv.Clear()
	sw, sh := cv.Width*2, cv.Height*4
	cx, cy := cam.Project(Point{}, sw, sh)
	arm := int(16 * cam.Scale(sw, sh))
	for x := cx - arm; x <= cx+arm; x += 2 {
		cv.Set(x, cy)
	}
	for y := cy - arm; y <= cy+arm; y += 2 {
		cv.Set(cx, y)
	}

	faces, centers := Faces(styles, stagger)
	Render3D(cv, faces, cam, centers)
}
