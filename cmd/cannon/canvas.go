package main

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Scene palette.
var (
	colorSky    = rgb(24, 28, 38)
	colorGround = rgb(34, 139, 34)
	colorBarrel = rgb(220, 220, 220)
	colorTrail  = rgb(0, 255, 128)
	colorLanded = rgb(96, 140, 96)
	colorShot   = rgb(255, 255, 0)
)

// rgb creates an opaque color from RGB values.
func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// canvas is a pixel grid drawn to the terminal at double vertical resolution
// with half-block characters: each terminal cell holds two stacked pixels.
type canvas struct {
	width  int // pixels, same as terminal columns
	height int // pixels, 2x terminal rows
	pixels []color.RGBA
}

// newCanvas creates a canvas sized for a cols x rows terminal.
func newCanvas(cols, rows int) *canvas {
	return &canvas{
		width:  cols,
		height: rows * 2,
		pixels: make([]color.RGBA, cols*rows*2),
	}
}

// clear fills the canvas with a solid color.
func (c *canvas) clear(col color.RGBA) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// setPixel sets the pixel at (x, y), ignoring out-of-bounds writes so
// callers can draw clipped geometry without guarding.
func (c *canvas) setPixel(x, y int, col color.RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] = col
}

// pixelAt returns the pixel at (x, y), transparent black if out of bounds.
func (c *canvas) pixelAt(x, y int) color.RGBA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return color.RGBA{}
	}
	return c.pixels[y*c.width+x]
}

// drawLine draws a line between two pixels using Bresenham's algorithm.
func (c *canvas) drawLine(x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillRows fills every pixel row in [y0, y1).
func (c *canvas) fillRows(y0, y1 int, col color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := 0; x < c.width; x++ {
			c.setPixel(x, y, col)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// draw converts the canvas to terminal cells. Each terminal row holds two
// pixel rows, rendered as ▀ with fg = top pixel and bg = bottom pixel.
func (c *canvas) draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < c.width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: c.pixelAt(col, topY),
					Bg: c.pixelAt(col, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}
