package viz

import (
	"os"
	"testing"

	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/easelab/internal/motion"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func TestCanvasFillQuad(t *testing.T) {
	cv := NewCanvas(10, 5)
	require.True(t, cv.Empty())

	cv.FillQuad([4]int{2, 12, 12, 2}, [4]int{2, 2, 12, 12}, 1)
	assert.True(t, cv.Lit(5, 5))
	assert.True(t, cv.Lit(12, 12))
	assert.False(t, cv.Lit(15, 5))
	assert.False(t, cv.Lit(-1, 0))
	assert.False(t, cv.Empty())

	cv.Clear()
	assert.True(t, cv.Empty())
}

func TestCanvasFillQuadDitherFollowsOpacity(t *testing.T) {
	count := func(opacity float64) int {
		cv := NewCanvas(8, 4)
		cv.FillQuad([4]int{0, 15, 15, 0}, [4]int{0, 0, 15, 15}, opacity)
		n := 0
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				if cv.Lit(x, y) {
					n++
				}
			}
		}
		return n
	}
	assert.Equal(t, 0, count(0))
	assert.Equal(t, 256, count(1))
	assert.InDelta(t, 128, count(0.5), 16)
}

func TestLayoutCentresItems(t *testing.T) {
	l := Layout(5)
	require.Len(t, l, 6)
	assert.Equal(t, Vec3{}, l[0])
	assert.InDelta(t, 0, l[3].X, 1e-9, "middle item sits on the centre line")
	assert.InDelta(t, ItemSize+ItemGap, l[2].X-l[1].X, 1e-9)
	assert.InDelta(t, -l[1].X, l[5].X, 1e-9)
}

func TestFacesSelectsGroup(t *testing.T) {
	styles := make([]motion.Style, 6)
	for i := range styles {
		styles[i] = motion.Baseline()
	}

	faces, centers := Faces(styles, false)
	require.Len(t, faces, 1)
	assert.InDelta(t, BoxSize, faces[0].Corners[1].X-faces[0].Corners[0].X, 1e-9)
	assert.Equal(t, Vec3{}, centers[0])

	faces, centers = Faces(styles, true)
	assert.Len(t, faces, 5)
	assert.Len(t, centers, 5)
	assert.InDelta(t, ItemSize, faces[0].Corners[1].X-faces[0].Corners[0].X, 1e-9)

	faces, _ = Faces(nil, false)
	assert.Empty(t, faces)
}

func TestTargetFaceTransforms(t *testing.T) {
	s := motion.Baseline()
	s.X, s.Y = 10, -20
	s.ScaleX, s.ScaleY = 2, 1
	f := TargetFace(s, Vec3{}, 100)
	assert.InDelta(t, -90, f.Corners[0].X, 1e-9)
	assert.InDelta(t, -70, f.Corners[0].Y, 1e-9)
	assert.InDelta(t, 110, f.Corners[1].X, 1e-9)

	s = motion.Baseline()
	s.Rotation = 90
	f = TargetFace(s, Vec3{}, 100)
	// top-left swings clockwise to top-right
	assert.InDelta(t, 50, f.Corners[0].X, 1e-9)
	assert.InDelta(t, -50, f.Corners[0].Y, 1e-9)

	s = motion.Baseline()
	s.RotateY = 90
	f = TargetFace(s, Vec3{}, 100)
	assert.InDelta(t, 0, f.Corners[1].X, 1e-9, "edge-on card has no width")
}

func TestTargetFaceOrigin(t *testing.T) {
	s := motion.Baseline()
	s.Origin = "top center"
	s.ScaleY = 0
	f := TargetFace(s, Vec3{}, 100)
	for _, c := range f.Corners {
		assert.InDelta(t, -50, c.Y, 1e-9, "collapses onto the top edge")
	}
}

func TestFaceProjectPerspective(t *testing.T) {
	s := motion.Baseline()
	s.Perspective = 800
	s.RotateX = -30
	f := TargetFace(s, Vec3{}, 100)
	pts := f.Project(Vec3{})
	top := pts[1].X - pts[0].X
	bottom := pts[2].X - pts[3].X
	assert.NotEqual(t, top, bottom)
}

func TestDrawStageHidesTransparentTargets(t *testing.T) {
	cv := NewCanvas(40, 12)
	cam := NewCamera()

	s := motion.Baseline()
	DrawStage(cv, cam, []motion.Style{s}, false)
	cx, cy := cam.Project(Point{X: 40}, cv.Width*2, cv.Height*4)
	assert.True(t, cv.Lit(cx, cy))

	s.Opacity = 0
	DrawStage(cv, cam, []motion.Style{s}, false)
	assert.False(t, cv.Lit(cx, cy))
}

func TestCameraZoomIsClamped(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 50; i++ {
		c.ZoomIn()
	}
	assert.Equal(t, 4.0, c.Zoom)
	for i := 0; i < 50; i++ {
		c.ZoomOut()
	}
	assert.Equal(t, 0.25, c.Zoom)
}

func TestDiffLines(t *testing.T) {
	orig := "a\nb\nc\n"
	assert.False(t, DiffLines(orig, orig).Changed())

	st := DiffLines(orig, "a\nB\nc\nd\n")
	assert.Equal(t, 2, st.Added)
	assert.Equal(t, 1, st.Removed)
}

func TestRenderWordDiffKeepsText(t *testing.T) {
	out := RenderWordDiff("x: 1", "x: 2", NewStyles(ThemePaper))
	assert.Contains(t, out, "x: ")
	assert.Contains(t, out, "2")
}

func TestGradientText(t *testing.T) {
	assert.Empty(t, GradientText("", "#ff0000", "#0000ff"))
	assert.Contains(t, GradientText("AB", "#ff0000", "#0000ff"), "B")
}

func TestThemes(t *testing.T) {
	assert.Equal(t, "phosphor", GetTheme("phosphor").Name)
	assert.Equal(t, ThemeStudio.Name, GetTheme("nope").Name)

	names := ThemeNames()
	seen := map[string]bool{}
	th := GetTheme(names[0])
	for range names {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	assert.Len(t, seen, len(names))
	assert.Equal(t, names[0], th.Name, "cycle wraps")

	assert.Equal(t, ThemeStudio.Accent, ThemeStudio.CategoryColor("nope"))
	assert.NotEqual(t, ThemeStudio.Accent, ThemeStudio.CategoryColor("cyan"))
}

func TestSparkline(t *testing.T) {
	s := NewStyles(ThemePaper)
	assert.Contains(t, s.Sparkline(nil, 4), "────")
	assert.Contains(t, s.Sparkline([]float64{0, 1}, 4), "█")
}
