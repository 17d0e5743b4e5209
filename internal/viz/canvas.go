package viz

import (
	"strings"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille dot grid of Width x Height cells, i.e. (2*Width) x
// (4*Height) dots with the origin at the top left.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport is the world rectangle shown on a canvas. X grows to the right
// and Y grows upwards.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Fit grows v so that (x, y) is visible.
func (v Viewport) Fit(x, y float64) Viewport {
	v.MinX = min(v.MinX, x)
	v.MaxX = max(v.MaxX, x)
	v.MinY = min(v.MinY, y)
	v.MaxY = max(v.MaxY, y)
	return v
}

// Project maps world (x, y) to canvas dots.
func (c *Canvas) Project(v Viewport, x, y float64) (int, int) {
	w, h := c.Dots()
	sx, sy := v.MaxX-v.MinX, v.MaxY-v.MinY
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	px := int((x - v.MinX) / sx * float64(w-1))
	py := int((v.MaxY - y) / sy * float64(h-1))
	return px, py
}

func (c *Canvas) Plot(v Viewport, x, y float64) {
	c.Set(c.Project(v, x, y))
}

func (c *Canvas) Line(v Viewport, x0, y0, x1, y1 float64) {
	ax, ay := c.Project(v, x0, y0)
	bx, by := c.Project(v, x1, y1)
	c.DrawLine(ax, ay, bx, by)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
