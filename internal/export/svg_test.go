package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/easing"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	assert.Empty(t, CanvasToSVG(nil, 2, "#fff"))

	cv := viz.NewCanvas(4, 2)
	cv.Set(1, 1)
	cv.Set(6, 5)
	svg := CanvasToSVG(cv, 2, "#00ffff")
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `fill="#00ffff"`)
	assert.Contains(t, svg, `width="16" height="16"`)
}

func TestStageSVGDrawsVisibleGroup(t *testing.T) {
	styles := make([]motion.Style, 1+motion.StaggerCount)
	for i := range styles {
		styles[i] = motion.Baseline()
	}

	box := StageSVG(styles, false, 640, 400)
	assert.Equal(t, 1, strings.Count(box, "<path"))
	assert.Contains(t, box, `fill="#00ffff"`)
	assert.Contains(t, box, "feDropShadow")

	items := StageSVG(styles, true, 640, 400)
	assert.Equal(t, motion.StaggerCount, strings.Count(items, "<path"))

	styles[0].Opacity = 0
	assert.NotContains(t, StageSVG(styles, false, 640, 400), "<path")
}

func TestFilmstripSVG(t *testing.T) {
	c := capture.New(capture.Config{Category: "entering", Variant: "fadeUp"})
	require.NoError(t, c.Setup())
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	svg := FilmstripSVG(res, false, 6, 160)
	assert.Equal(t, 6, strings.Count(svg, "<text"))
	assert.Contains(t, svg, "0.00s")
	assert.Empty(t, FilmstripSVG(res, false, 0, 160))
	assert.Empty(t, FilmstripSVG(nil, false, 4, 160))
}

func TestCurveSVGShowsGuides(t *testing.T) {
	svg := CurveSVG(easing.MustParse("back.out(1.7)"), 200, 100, "#ff00ff")
	assert.Equal(t, 2, strings.Count(svg, "stroke-dasharray"))
	assert.Contains(t, svg, `stroke="#ff00ff"`)
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestTrajectoryNeedsTwoPoints(t *testing.T) {
	assert.Empty(t, TrajectoryToSVG([]struct{ X, Y float64 }{{0, 0}}, 10, 10, "#fff"))
	assert.Empty(t, SeriesSVG([]float64{0}, []float64{1}, 10, 10, "#fff"))
	assert.NotEmpty(t, SeriesSVG([]float64{0, 1}, []float64{1, 2}, 10, 10, "#fff"))
}
