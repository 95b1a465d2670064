package viz

import "strings"

// Empty braille cell. Each cell packs a 2x4 block of dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const blank = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille raster of Width x Height cells, addressed in
// sub-pixels (Width*2 by Height*4).
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// dot returns the cell holding sub-pixel (x, y) and its bit, or nil when
// the point is off the canvas.
func (c *Canvas) dot(x, y int) (*rune, rune) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return nil, 0
	}
	return &c.cells[y/4][x/2], dotBits[y%4][x%2]
}

// Set turns on the sub-pixel at (x, y). Points off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if cell, bit := c.dot(x, y); cell != nil {
		*cell |= bit
	}
}

func (c *Canvas) Lit(x, y int) bool {
	cell, bit := c.dot(x, y)
	return cell != nil && *cell&bit != 0
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = blank
		}
	}
}

func (c *Canvas) Empty() bool {
	for _, row := range c.cells {
		for _, r := range row {
			if r != blank {
				return false
			}
		}
	}
	return true
}

var bayer = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// FillQuad shades a convex quadrilateral with an ordered dither whose
// density follows opacity.
func (c *Canvas) FillQuad(xs, ys [4]int, opacity float64) {
	minX, maxX, minY, maxY := xs[0], xs[0], ys[0], ys[0]
	for i := 1; i < 4; i++ {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
	}
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, c.Width*2-1), min(maxY, c.Height*4-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !inside(xs, ys, x, y) {
				continue
			}
			if opacity > (bayer[y%4][x%4]+0.5)/16 {
				c.Set(x, y)
			}
		}
	}
}

func inside(xs, ys [4]int, x, y int) bool {
	var pos, neg bool
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		cross := (xs[j]-xs[i])*(y-ys[i]) - (ys[j]-ys[i])*(x-xs[i])
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// DrawLine traces an outline edge with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
