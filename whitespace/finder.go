package whitespace

import (
	"log/slog"
	"math"

	"github.com/tsawler/pagelayout/model"
)

// Config holds configuration for the whitespace search
type Config struct {
	// Direction is recorded on every rectangle found
	Direction model.Direction

	// MinWidth and MinHeight are the smallest sub-rectangle the search keeps
	// when splitting around a pivot. Column searches use a small width and a
	// large height, row searches the opposite.
	MinWidth  float64
	MinHeight float64

	// MaxQueueSize caps the number of pending candidates. Reaching it ends
	// the search with a partial result.
	// Default: 100000
	MaxQueueSize int

	// EdgeTolerance is how close a candidate must come to the region edge to
	// count as touching it.
	// Default: 1.0
	EdgeTolerance float64

	// AdjacencyTolerance is the largest distance at which a candidate counts
	// as adjacent to an accepted rectangle.
	// Default: 0.01
	AdjacencyTolerance float64

	// A candidate with a few obstacles is still "empty enough" when there
	// are at most MaxTolerableObstacles of them and each overlaps the
	// candidate by less than MaxObstacleOverlap of its own area and less
	// than MaxBoundOverlap of the candidate's area. These are calibration
	// constants.
	MaxTolerableObstacles int
	MaxObstacleOverlap    float64
	MaxBoundOverlap       float64

	// Logger receives anomalies such as a truncated search.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns the configuration for the given search direction
func DefaultConfig(direction model.Direction) Config {
	cfg := Config{
		Direction:             direction,
		MaxQueueSize:          100000,
		EdgeTolerance:         1.0,
		AdjacencyTolerance:    0.01,
		MaxTolerableObstacles: 3,
		MaxObstacleOverlap:    0.3,
		MaxBoundOverlap:       0.4,
	}
	if direction == model.Horizontal {
		cfg.MinWidth = 30
		cfg.MinHeight = 4
	} else {
		cfg.MinWidth = 4
		cfg.MinHeight = 30
	}
	return cfg
}

// Finder searches for whitespace rectangles
type Finder struct {
	config  Config
	quality Quality
	filter  Filter
}

// NewFinder creates a finder with the default configuration and quality for
// the given direction
func NewFinder(direction model.Direction) *Finder {
	return NewFinderWithConfig(DefaultConfig(direction))
}

// NewFinderWithConfig creates a finder with a custom configuration, using the
// direction's default quality function
func NewFinderWithConfig(config Config) *Finder {
	var q Quality
	if config.Direction == model.Horizontal {
		q = HorizontalQuality{MinWidth: config.MinWidth, MinHeight: config.MinHeight}
	} else {
		q = VerticalQuality{MinWidth: config.MinWidth, MinHeight: config.MinHeight}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Finder{config: config, quality: q}
}

// WithQuality returns a copy of the finder using q to rank candidates
func (f *Finder) WithQuality(q Quality) *Finder {
	c := *f
	c.quality = q
	return &c
}

// WithFilter returns a copy of the finder that asks filter before accepting
// a candidate
func (f *Finder) WithFilter(filter Filter) *Finder {
	c := *f
	c.filter = filter
	return &c
}

// Config returns the finder configuration
func (f *Finder) Config() Config { return f.config }

// Result is the outcome of one search
type Result struct {
	// Whitespace holds the accepted rectangles in the order they were found
	Whitespace []*model.WhitespaceRect

	// Truncated is set when the queue ceiling stopped the search early
	Truncated bool

	// Evaluated counts the candidates taken off the queue
	Evaluated int
}

// search is the state of one Find call
type search struct {
	f        *Finder
	region   model.Rectangle
	pending  queue
	parked   []*entry
	accepted []*model.WhitespaceRect
	order    int
}

// Find returns up to k whitespace rectangles inside bound, avoiding the
// given obstacles.
func (f *Finder) Find(bound model.Rectangle, obstacles []model.Rectangle, k int) Result {
	var res Result
	if k <= 0 || !bound.IsValid() {
		return res
	}

	s := &search{f: f, region: bound}
	var inside []model.Rectangle
	for _, o := range obstacles {
		if o.Intersects(bound) {
			inside = append(inside, o)
		}
	}
	s.enqueue(&entry{bound: bound, obstacles: inside})

	for len(s.accepted) < k && s.pending.Len() > 0 {
		if s.pending.Len()+len(s.parked) > f.config.MaxQueueSize {
			res.Truncated = true
			f.config.Logger.Warn("whitespace search hit queue ceiling",
				"region", bound.String(),
				"found", len(s.accepted),
				"wanted", k,
				"ceiling", f.config.MaxQueueSize)
			break
		}

		e := s.pending.pop()
		res.Evaluated++

		if !s.revalidate(e) {
			continue
		}

		if s.emptyEnough(e) {
			s.consider(e)
			continue
		}

		s.split(e)
	}

	res.Whitespace = s.accepted
	return res
}

// enqueue scores e and pushes it, dropping rectangles that can never be
// selected.
func (s *search) enqueue(e *entry) {
	e.quality = s.f.quality.Score(e.bound)
	if math.IsInf(e.quality, -1) || math.IsNaN(e.quality) {
		return
	}
	e.order = s.order
	s.order++
	s.pending.push(e)
}

// revalidate brings the obstacles of a stale entry up to date by testing only
// the whitespace accepted since it was queued. It returns false when the
// entry is now fully covered.
func (s *search) revalidate(e *entry) bool {
	if e.seen >= len(s.accepted) {
		return true
	}
	for _, ws := range s.accepted[e.seen:] {
		if ws.Rect.Contains(e.bound) {
			return false
		}
		if ws.Rect.Intersects(e.bound) {
			e.obstacles = append(e.obstacles, ws.Rect)
		}
	}
	e.seen = len(s.accepted)
	return true
}

// emptyEnough reports whether e has no obstacles, or only a few small ones
// that barely overlap it.
func (s *search) emptyEnough(e *entry) bool {
	if len(e.obstacles) == 0 {
		return true
	}
	cfg := s.f.config
	if len(e.obstacles) > cfg.MaxTolerableObstacles {
		return false
	}
	boundArea := e.bound.Area()
	for _, o := range e.obstacles {
		in, ok := o.Intersection(e.bound)
		if !ok {
			continue
		}
		overlap := in.Area()
		if overlap >= cfg.MaxObstacleOverlap*o.Area() || overlap >= cfg.MaxBoundOverlap*boundArea {
			return false
		}
	}
	return true
}

// consider accepts e when it is connected to the region edge or to accepted
// whitespace, and parks it otherwise.
func (s *search) consider(e *entry) {
	if !s.touchesEdge(e.bound) && !s.adjacentToAccepted(e.bound) {
		s.parked = append(s.parked, e)
		return
	}
	if s.f.filter != nil && !s.f.filter(e.bound, s.accepted) {
		return
	}

	s.accepted = append(s.accepted, &model.WhitespaceRect{
		Rect:      e.bound,
		Score:     e.quality,
		Direction: s.f.config.Direction,
	})

	// parked candidates may now be adjacent to the new rectangle
	for _, p := range s.parked {
		p.order = s.order
		s.order++
		s.pending.push(p)
	}
	s.parked = s.parked[:0]
}

func (s *search) touchesEdge(r model.Rectangle) bool {
	tol := s.f.config.EdgeTolerance
	return math.Abs(r.X-s.region.X) <= tol ||
		math.Abs(r.EndX()-s.region.EndX()) <= tol ||
		math.Abs(r.Y-s.region.Y) <= tol ||
		math.Abs(r.EndY()-s.region.EndY()) <= tol
}

func (s *search) adjacentToAccepted(r model.Rectangle) bool {
	for _, ws := range s.accepted {
		if r.Distance(ws.Rect) < s.f.config.AdjacencyTolerance {
			return true
		}
	}
	return false
}

// pivot returns the index of the obstacle to split around: the only one, or
// the one whose centre is nearest the bound's centre. Ties keep the earlier
// obstacle.
func pivot(e *entry) int {
	if len(e.obstacles) == 1 {
		return 0
	}
	center := e.bound.Center()
	best := 0
	bestDist := math.Inf(1)
	for i, o := range e.obstacles {
		d := o.Center().Distance(center)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// split divides e around its pivot into the left, above, right and below
// sub-rectangles and queues those large enough to matter.
func (s *search) split(e *entry) {
	pi := pivot(e)
	p := e.obstacles[pi]
	b := e.bound
	cfg := s.f.config

	sides := []model.Rectangle{
		{X: b.X, Y: b.Y, Width: p.X - b.X, Height: b.Height},               // left
		{X: b.X, Y: b.Y, Width: b.Width, Height: p.Y - b.Y},                // above
		{X: p.EndX(), Y: b.Y, Width: b.EndX() - p.EndX(), Height: b.Height}, // right
		{X: b.X, Y: p.EndY(), Width: b.Width, Height: b.EndY() - p.EndY()}, // below
	}

	for _, sub := range sides {
		if sub.Width < cfg.MinWidth || sub.Height < cfg.MinHeight || !sub.IsValid() {
			continue
		}

		var inherited []model.Rectangle
		covered := false
		for i, o := range e.obstacles {
			if i == pi || !o.Intersects(sub) {
				continue
			}
			if o.Contains(sub) {
				covered = true
				break
			}
			inherited = append(inherited, o)
		}
		if covered {
			continue
		}

		s.enqueue(&entry{bound: sub, obstacles: inherited, seen: e.seen})
	}
}
