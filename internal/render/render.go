// Package render draws a solution path as an animated GIF.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-ricrob/photosolver/internal/board"
	"github.com/go-ricrob/photosolver/internal/robot"
	"github.com/go-ricrob/photosolver/internal/solver"
)

const (
	captionHeight = 18
	wallWidth     = 3
)

// Options configures the rendering.
type Options struct {
	CellSize int           // pixels per cell, defaults to 32
	Delay    time.Duration // per frame, defaults to 600ms
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = 32
	}
	if o.Delay <= 0 {
		o.Delay = 600 * time.Millisecond
	}
	return o
}

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black = color.RGBA{0x00, 0x00, 0x00, 0xff}
	grey  = color.RGBA{0xbe, 0xbe, 0xbe, 0xff}
)

// robotColors is indexed like robot.Colors.
var robotColors = [robot.Num]color.RGBA{
	{0xff, 0xd7, 0x00, 0xff}, // yellow
	{0xff, 0x00, 0x00, 0xff}, // red
	{0x00, 0x80, 0x00, 0xff}, // green
	{0x00, 0x00, 0xff, 0xff}, // blue
}

var palette = color.Palette{white, black, grey, robotColors[0], robotColors[1], robotColors[2], robotColors[3]}

// GIF writes one frame per state of the path, from the initial positions to the final ones.
// moves are reverse-chronological as returned by the solver.
func GIF(w io.Writer, b *board.Board, start robot.Positions, moves []solver.Move, goal board.Cell, opts Options) error {
	opts = opts.withDefaults()
	fwd := solver.Forward(moves)

	anim := &gif.GIF{}
	delay := int(opts.Delay / (10 * time.Millisecond))
	add := func(img *image.Paletted) {
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}

	pos := start
	add(Frame(b, pos, goal, fmt.Sprintf("start, %d moves", len(fwd)), opts.CellSize))
	for i, m := range fwd {
		idx, ok := robot.Index(m.Robot)
		if !ok {
			return fmt.Errorf("move %d: %w", i+1, robot.ErrUnknown)
		}
		if pos[idx] != m.From {
			return fmt.Errorf("move %d: %s is at %s, not %s", i+1, robot.Name(m.Robot), pos[idx], m.From)
		}
		pos[idx] = m.To
		caption := fmt.Sprintf("%d/%d %s %s", i+1, len(fwd), robot.Name(m.Robot), direction(m.From, m.To))
		add(Frame(b, pos, goal, caption, opts.CellSize))
	}
	return gif.EncodeAll(w, anim)
}

func direction(from, to board.Cell) board.Direction {
	switch {
	case to.Row < from.Row:
		return board.North
	case to.Row > from.Row:
		return board.South
	case to.Col < from.Col:
		return board.West
	default:
		return board.East
	}
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func cellRect(c board.Cell, cs int) image.Rectangle {
	return image.Rect(c.Col*cs, c.Row*cs, (c.Col+1)*cs, (c.Row+1)*cs)
}

// Frame draws the board with the robots at pos and a caption below the grid.
func Frame(b *board.Board, pos robot.Positions, goal board.Cell, caption string, cellSize int) *image.Paletted {
	cs := cellSize
	size := b.Size() * cs
	img := image.NewPaletted(image.Rect(0, 0, size, size+captionHeight), palette)
	fill(img, img.Bounds(), white)

	if b.Inside(goal) {
		fill(img, cellRect(goal, cs), grey)
	}

	for i, c := range pos {
		disc(img, c.Col*cs+cs/2, c.Row*cs+cs/2, cs/3, robotColors[i])
	}

	// grid
	for i := 1; i < b.Size(); i++ {
		fill(img, image.Rect(i*cs, 0, i*cs+1, size), black)
		fill(img, image.Rect(0, i*cs, size, i*cs+1), black)
	}
	// frame
	fill(img, image.Rect(0, 0, size, wallWidth), black)
	fill(img, image.Rect(0, size-wallWidth, size, size), black)
	fill(img, image.Rect(0, 0, wallWidth, size), black)
	fill(img, image.Rect(size-wallWidth, 0, size, size), black)

	for _, w := range b.Walls() {
		a, c, _ := w.Cells()
		half := wallWidth / 2
		if a.Row == c.Row { // between columns
			x := c.Col * cs
			fill(img, image.Rect(x-half, a.Row*cs, x-half+wallWidth, (a.Row+1)*cs), black)
		} else {
			y := c.Row * cs
			fill(img, image.Rect(a.Col*cs, y-half, (a.Col+1)*cs, y-half+wallWidth), black)
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, size+captionHeight-4),
	}
	d.DrawString(caption)
	return img
}

func disc(img draw.Image, cx, cy, r int, c color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				img.Set(cx+x, cy+y, c)
			}
		}
	}
}
