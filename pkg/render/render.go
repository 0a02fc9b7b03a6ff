// Package render rasterises assembler output into images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pepasm/pkg/grid"
)

const (
	margin     = 8
	lineHeight = 15
	// baseline offset of basicfont.Face7x13 inside a line
	ascent = 11
)

var (
	Background = color.White
	Foreground = color.Black
	TitleColor = color.RGBA{0x1f, 0x4e, 0x9a, 0xff}
)

type Options struct {
	Title string
	// Scale multiplies the output size; values below 1 mean 1.
	Scale int
}

func face() font.Face { return basicfont.Face7x13 }

// textWidth measures s in pixels.
func textWidth(s string) int {
	return font.MeasureString(face(), s).Ceil()
}

// Text draws rows of monospaced text on a white canvas sized to fit.
func Text(rows []string, opts Options) *image.RGBA {
	lines := rows
	if opts.Title != "" {
		lines = append([]string{opts.Title, ""}, rows...)
	}

	width := 0
	for _, l := range lines {
		width = max(width, textWidth(l))
	}
	bounds := image.Rect(0, 0, width+2*margin, len(lines)*lineHeight+2*margin)
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(Background), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.NewUniform(Foreground), Face: face()}
	for i, l := range lines {
		d.Src = image.NewUniform(Foreground)
		if opts.Title != "" && i == 0 {
			d.Src = image.NewUniform(TitleColor)
		}
		d.Dot = fixed.P(margin, margin+i*lineHeight+ascent)
		d.DrawString(l)
	}
	return scale(img, opts.Scale)
}

// Listing renders listing rows.
func Listing(rows []string, opts Options) *image.RGBA {
	return Text(rows, opts)
}

// HexDump lays object code out cols bytes per row, each row prefixed with
// the address of its first byte.
func HexDump(code []byte, base, cols int, opts Options) *image.RGBA {
	if cols <= 0 {
		cols = 16
	}
	cells := make([][]string, grid.Rows(len(code), cols))
	for i, b := range code {
		_, y := grid.GetGridCoords(i, cols)
		cells[y] = append(cells[y], fmt.Sprintf("%02X", b))
	}
	rows := make([]string, len(cells))
	for y, cell := range cells {
		row := fmt.Sprintf("%04X:", uint16(base+y*cols))
		for _, c := range cell {
			row += " " + c
		}
		rows[y] = row
	}
	return Text(rows, opts)
}

func scale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
