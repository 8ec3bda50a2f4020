package whitespace

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pagelayout/model"
)

func quietConfig(direction model.Direction) Config {
	cfg := DefaultConfig(direction)
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func rect(x, y, w, h float64) model.Rectangle {
	return model.MustRectangle(x, y, w, h)
}

// twoColumnLines lays out lines of text in x∈[0,280] and x∈[320,600].
func twoColumnLines(height float64) []model.Rectangle {
	var out []model.Rectangle
	for y := 0.0; y+10 <= height; y += 20 {
		out = append(out, rect(0, y, 280, 10), rect(320, y, 280, 10))
	}
	return out
}

func TestFindObstacleFreeReturnsBound(t *testing.T) {
	bound := rect(0, 0, 600, 800)
	res := NewFinderWithConfig(quietConfig(model.Vertical)).Find(bound, nil, 5)

	require.NotEmpty(t, res.Whitespace)
	assert.Equal(t, bound, res.Whitespace[0].Rect)
	assert.Equal(t, model.Vertical, res.Whitespace[0].Direction)
	assert.False(t, res.Truncated)
}

func TestFindFullyCoveredRegion(t *testing.T) {
	bound := rect(0, 0, 600, 800)
	res := NewFinderWithConfig(quietConfig(model.Vertical)).Find(bound, []model.Rectangle{bound}, 5)

	assert.Empty(t, res.Whitespace)
	assert.False(t, res.Truncated)
}

func TestFindColumnGap(t *testing.T) {
	bound := rect(0, 0, 600, 800)
	res := NewFinderWithConfig(quietConfig(model.Vertical)).Find(bound, twoColumnLines(800), 1)

	require.Len(t, res.Whitespace, 1)
	assert.Equal(t, rect(280, 0, 40, 800), res.Whitespace[0].Rect)
}

func TestFindRowGap(t *testing.T) {
	bound := rect(0, 0, 600, 400)
	obstacles := []model.Rectangle{
		rect(0, 0, 600, 150),
		rect(0, 250, 600, 150),
	}
	res := NewFinderWithConfig(quietConfig(model.Horizontal)).Find(bound, obstacles, 1)

	require.Len(t, res.Whitespace, 1)
	assert.Equal(t, rect(0, 150, 600, 100), res.Whitespace[0].Rect)
	assert.Equal(t, model.Horizontal, res.Whitespace[0].Direction)
}

func TestFindIgnoresEnclosedHoles(t *testing.T) {
	bound := rect(0, 0, 100, 100)
	ring := []model.Rectangle{
		rect(0, 0, 40, 100),
		rect(60, 0, 40, 100),
		rect(40, 0, 20, 20),
		rect(40, 80, 20, 20),
	}
	res := NewFinderWithConfig(quietConfig(model.Vertical)).Find(bound, ring, 3)

	assert.Empty(t, res.Whitespace, "a hole not connected to the edge must not be accepted")
}

func TestFindToleratesSmallObstacles(t *testing.T) {
	bound := rect(0, 0, 100, 100)
	// a speck that mostly lies outside the region
	speck := rect(98, 50, 10, 2)
	res := NewFinderWithConfig(quietConfig(model.Vertical)).Find(bound, []model.Rectangle{speck}, 1)

	require.Len(t, res.Whitespace, 1)
	assert.Equal(t, bound, res.Whitespace[0].Rect)
}

func TestFindFilterRejects(t *testing.T) {
	bound := rect(0, 0, 600, 800)
	calls := 0
	finder := NewFinderWithConfig(quietConfig(model.Vertical)).WithFilter(
		func(candidate model.Rectangle, accepted []*model.WhitespaceRect) bool {
			calls++
			return false
		})

	res := finder.Find(bound, nil, 3)
	assert.Empty(t, res.Whitespace)
	assert.Equal(t, 1, calls)
}

func TestFindAcceptedRectanglesDoNotOverlap(t *testing.T) {
	bound := rect(0, 0, 600, 800)
	obstacles := twoColumnLines(400)
	obstacles = append(obstacles, rect(0, 500, 600, 10), rect(100, 600, 50, 150))

	res := NewFinderWithConfig(quietConfig(model.Vertical)).Find(bound, obstacles, 6)
	require.NotEmpty(t, res.Whitespace)

	for i, a := range res.Whitespace {
		for _, b := range res.Whitespace[i+1:] {
			in, ok := a.Rect.Intersection(b.Rect)
			if !ok {
				continue
			}
			smaller := a.Rect.Area()
			if b.Rect.Area() < smaller {
				smaller = b.Rect.Area()
			}
			assert.Less(t, in.Area(), 0.4*smaller, "%v overlaps %v", a.Rect, b.Rect)
		}
	}
}

func TestFindQueueCeiling(t *testing.T) {
	cfg := quietConfig(model.Vertical)
	cfg.MaxQueueSize = 2

	bound := rect(0, 0, 600, 800)
	res := NewFinderWithConfig(cfg).Find(bound, twoColumnLines(800), 5)

	assert.True(t, res.Truncated)
	assert.Less(t, len(res.Whitespace), 5)
}

func TestFindRespectsK(t *testing.T) {
	bound := rect(0, 0, 600, 800)
	obstacles := []model.Rectangle{rect(0, 390, 600, 20)}

	res := NewFinderWithConfig(quietConfig(model.Horizontal)).Find(bound, obstacles, 1)
	assert.Len(t, res.Whitespace, 1)

	res = NewFinderWithConfig(quietConfig(model.Horizontal)).Find(bound, obstacles, 0)
	assert.Empty(t, res.Whitespace)
}

func TestQualityFloor(t *testing.T) {
	v := VerticalQuality{MinWidth: 4, MinHeight: 30}
	assert.Equal(t, -1, sign(v.Score(rect(0, 0, 3, 100))))
	assert.Equal(t, -1, sign(v.Score(rect(0, 0, 10, 20))))
	assert.Greater(t, v.Score(rect(0, 0, 10, 100)), v.Score(rect(0, 0, 100, 10.1)))

	h := HorizontalQuality{MinWidth: 30, MinHeight: 4}
	assert.Greater(t, h.Score(rect(0, 0, 100, 10)), h.Score(rect(0, 0, 10, 100)))
}

func sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
