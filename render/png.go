package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/vector"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
)

// MaxPixels bounds the side length of a rasterised page.
const MaxPixels = 16384

var (
	whitespaceColor = color.NRGBA{R: 0, G: 200, B: 90, A: 50}
	textColor       = color.NRGBA{R: 40, G: 40, B: 40, A: 160}
	graphicColor    = color.NRGBA{R: 200, G: 100, B: 0, A: 120}
	regionColor     = color.NRGBA{R: 0, G: 90, B: 200, A: 220}
	boundaryColor   = color.NRGBA{R: 220, G: 0, B: 0, A: 200}
)

// WritePNG rasterises one page's layout as a PNG image.
func WritePNG(w io.Writer, page *layout.Page, config Config) error {
	img, err := Rasterize(page, config)
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, img), "encode png")
}

// Rasterize draws the layout of a page onto a white image. Whitespace and
// text are filled, regions are outlined and boundaries are drawn on top.
func Rasterize(page *layout.Page, config Config) (*image.RGBA, error) {
	s := config.scale()
	width := int(math.Ceil(page.Bounds.Width * s))
	height := int(math.Ceil(page.Bounds.Height * s))
	if width < 1 || height < 1 || width > MaxPixels || height > MaxPixels {
		return nil, errors.Errorf("page %d: cannot rasterise at %dx%d pixels", page.Number, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	c := &canvas{dst: img, z: vector.NewRasterizer(width, height), scale: s}

	if config.Whitespace {
		for _, r := range page.Regions() {
			for _, ws := range r.Whitespace() {
				c.fill(ws.Rect, whitespaceColor)
			}
		}
	}
	if config.Text {
		for _, r := range page.Regions() {
			for _, run := range r.TextRuns() {
				c.fill(run.Rect, textColor)
			}
		}
	}
	if config.Graphics {
		for _, g := range page.Graphics {
			c.outline(g.Rect, graphicColor)
		}
	}
	for _, r := range page.Regions() {
		if r.Parent() != nil {
			c.outline(r.Bounds(), regionColor)
		}
	}
	if config.Boundaries {
		for _, r := range page.Regions() {
			for _, b := range r.Boundaries() {
				c.fill(b, boundaryColor)
			}
		}
	}
	return img, nil
}

// canvas fills page rectangles onto an image through a vector rasterizer.
type canvas struct {
	dst   *image.RGBA
	z     *vector.Rasterizer
	scale float64
}

func (c *canvas) fill(r model.Rectangle, col color.Color) {
	x0, y0 := float32(r.X*c.scale), float32(r.Y*c.scale)
	x1, y1 := float32(r.EndX()*c.scale), float32(r.EndY()*c.scale)
	c.polygon(x0, y0, x1, y1, col)
}

// outline draws a one pixel frame just inside r
func (c *canvas) outline(r model.Rectangle, col color.Color) {
	x0, y0 := float32(r.X*c.scale), float32(r.Y*c.scale)
	x1, y1 := float32(r.EndX()*c.scale), float32(r.EndY()*c.scale)
	c.polygon(x0, y0, x1, y0+1, col)
	c.polygon(x0, y1-1, x1, y1, col)
	c.polygon(x0, y0, x0+1, y1, col)
	c.polygon(x1-1, y0, x1, y1, col)
}

func (c *canvas) polygon(x0, y0, x1, y1 float32, col color.Color) {
	b := c.dst.Bounds()
	x0, x1 = clamp(x0, b.Dx()), clamp(x1, b.Dx())
	y0, y1 = clamp(y0, b.Dy()), clamp(y1, b.Dy())
	if x1 <= x0 || y1 <= y0 {
		return
	}
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(x0, y0)
	c.z.LineTo(x1, y0)
	c.z.LineTo(x1, y1)
	c.z.LineTo(x0, y1)
	c.z.ClosePath()
	c.z.Draw(c.dst, b, image.NewUniform(col), image.Point{})
}

func clamp(v float32, limit int) float32 {
	return float32(math.Max(0, math.Min(float64(v), float64(limit))))
}
