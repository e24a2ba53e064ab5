// Package density partitions a one-dimensional set of integer observations into
// dense clusters and wide gaps, and scores every detected segment with a
// population z-score.
//
// The pipeline is: sort, segment (scan or neighborhood strategy), score.
// Nothing in this package keeps state between calls.
package density

// Kind discriminates the two segment variants.
type Kind string

const (
	// KindCluster marks a run of closely spaced observations.
	KindCluster Kind = "cluster"
	// KindGap marks a wide separation between two consecutive observations.
	KindGap Kind = "gap"
)

// Segment is a detected cluster or gap. The interface is sealed: *Cluster and
// *Gap are its only implementations.
type Segment interface {
	Kind() Kind
	Start() int64
	End() int64
	SpanLength() float64
	NumElements() int
	Centroid() float64

	// ZScore returns the score and whether it was set. A cluster whose
	// density is undefined (zero span) stays unscored.
	ZScore() (float64, bool)

	setZScore(z float64)
}

type score struct {
	value float64
	set   bool
}

// ZScore returns the segment score and whether it has been assigned.
func (s *score) ZScore() (float64, bool) {
	return s.value, s.set
}

func (s *score) setZScore(z float64) {
	s.value = z
	s.set = true
}

// Cluster is a run of observations whose consecutive distances stay within the
// cluster threshold.
type Cluster struct {
	score

	elements []int64
	centroid float64
}

// NewCluster builds a cluster from sorted, non-empty elements. The slice is copied.
func NewCluster(elements []int64) *Cluster {
	owned := make([]int64, len(elements))
	copy(owned, elements)

	var sum float64

	for _, v := range owned {
		sum += float64(v)
	}

	return &Cluster{
		elements: owned,
		centroid: sum / float64(len(owned)),
	}
}

// Kind returns KindCluster.
func (c *Cluster) Kind() Kind { return KindCluster }

// Start returns the smallest element.
func (c *Cluster) Start() int64 { return c.elements[0] }

// End returns the largest element.
func (c *Cluster) End() int64 { return c.elements[len(c.elements)-1] }

// SpanLength returns End − Start.
func (c *Cluster) SpanLength() float64 { return float64(c.End()) - float64(c.Start()) }

// NumElements returns the member count.
func (c *Cluster) NumElements() int { return len(c.elements) }

// Centroid returns the arithmetic mean of the members.
func (c *Cluster) Centroid() float64 { return c.centroid }

// Elements returns the members in ascending order. Callers must not modify it.
func (c *Cluster) Elements() []int64 { return c.elements }

// Density returns members per unit of span. ok is false for a zero span.
func (c *Cluster) Density() (density float64, ok bool) {
	span := c.SpanLength()
	if span <= 0 {
		return 0, false
	}

	return float64(len(c.elements)) / span, true
}

// Gap is a separation between two consecutive observations that exceeds the
// gap threshold. It carries no elements.
type Gap struct {
	score

	start int64
	end   int64
}

// NewGap builds a gap bounded by the observations start and end.
func NewGap(start, end int64) *Gap {
	return &Gap{start: start, end: end}
}

// Kind returns KindGap.
func (g *Gap) Kind() Kind { return KindGap }

// Start returns the left bounding observation.
func (g *Gap) Start() int64 { return g.start }

// End returns the right bounding observation.
func (g *Gap) End() int64 { return g.end }

// SpanLength returns End − Start.
func (g *Gap) SpanLength() float64 { return float64(g.end) - float64(g.start) }

// NumElements is always 0 for a gap.
func (g *Gap) NumElements() int { return 0 }

// Centroid returns the midpoint of the bounding observations.
func (g *Gap) Centroid() float64 { return (float64(g.start) + float64(g.end)) / 2 }
