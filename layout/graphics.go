package layout

import (
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/spatial"
)

// GraphicConfig holds configuration for graphic classification
type GraphicConfig struct {
	// SeparatorMaxThickness is the thickest a line-shaped graphic may be
	// Default: 3.0
	SeparatorMaxThickness float64

	// SeparatorMinLength is the shortest separator, in average glyph widths
	// Default: 8.0
	SeparatorMinLength float64

	// MathBarMaxLength is the longest fraction bar, in average glyph widths
	// Default: 8.0
	MathBarMaxLength float64

	// MathBarTextDistance is how close text must sit above and below a
	// fraction bar, as a multiple of the average font size
	// Default: 1.0
	MathBarTextDistance float64

	// ContainerMinText is the number of text runs a box must enclose to
	// count as a container
	// Default: 1
	ContainerMinText int
}

// DefaultGraphicConfig returns sensible defaults for graphic classification
func DefaultGraphicConfig() GraphicConfig {
	return GraphicConfig{
		SeparatorMaxThickness: 3.0,
		SeparatorMinLength:    8.0,
		MathBarMaxLength:      8.0,
		MathBarTextDistance:   1.0,
		ContainerMinText:      1,
	}
}

// GraphicClassifier assigns a role to every graphic primitive of a page
type GraphicClassifier struct {
	config GraphicConfig
}

// NewGraphicClassifier creates a classifier with default configuration
func NewGraphicClassifier() *GraphicClassifier {
	return &GraphicClassifier{config: DefaultGraphicConfig()}
}

// NewGraphicClassifierWithConfig creates a classifier with custom configuration
func NewGraphicClassifierWithConfig(config GraphicConfig) *GraphicClassifier {
	return &GraphicClassifier{config: config}
}

// Classify sets the Role of each graphic. Text positions are taken from
// text, and stats provide the glyph and font scale.
func (c *GraphicClassifier) Classify(graphics []*model.Graphic, text *spatial.Index, stats Stats) {
	glyph := stats.AvgGlyphWidth
	if glyph <= 0 {
		glyph = 5
	}
	fontSize := stats.AvgFontSize
	if fontSize <= 0 {
		fontSize = 10
	}

	for _, g := range graphics {
		g.Role = c.classify(g, text, glyph, fontSize)
	}
}

func (c *GraphicClassifier) classify(g *model.Graphic, text *spatial.Index, glyph, fontSize float64) model.GraphicRole {
	r := g.Rect
	thickness, length := r.Height, r.Width
	if g.IsVertical() {
		thickness, length = r.Width, r.Height
	}

	if thickness <= c.config.SeparatorMaxThickness {
		if !g.IsVertical() && length < c.config.MathBarMaxLength*glyph && c.isMathBar(r, text, fontSize) {
			return model.RoleMathBar
		}
		if length >= c.config.SeparatorMinLength*glyph {
			return model.RoleSeparator
		}
		return model.RoleContent
	}

	enclosed := 0
	for _, it := range text.Intersecting(r) {
		if r.Contains(it.Bounds()) {
			enclosed++
		}
	}
	if enclosed >= c.config.ContainerMinText {
		return model.RoleContainer
	}
	return model.RoleContent
}

// isMathBar reports whether there is text right above and right below the
// bar, horizontally overlapping it.
func (c *GraphicClassifier) isMathBar(bar model.Rectangle, text *spatial.Index, fontSize float64) bool {
	reach := c.config.MathBarTextDistance * fontSize
	above := model.Rectangle{X: bar.X, Y: bar.Y - reach, Width: bar.Width, Height: reach}
	below := model.Rectangle{X: bar.X, Y: bar.EndY(), Width: bar.Width, Height: reach}
	return len(text.Intersecting(above)) > 0 && len(text.Intersecting(below)) > 0
}
