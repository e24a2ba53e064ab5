package density

// DefaultGapScale is the multiplier k in gap_threshold = factor * mean_distance * k.
const DefaultGapScale = 2.0

// minSegmentableObservations is the smallest input that has a consecutive pair.
const minSegmentableObservations = 2

// Params tunes one segmentation pass.
type Params struct {
	// Factor is the sensitivity. Larger values tighten the cluster threshold
	// and widen the gap threshold.
	Factor float64
	// MinClusterSize is the smallest accumulator that is kept as a cluster.
	MinClusterSize int
	// GapScale is the k multiplier of the gap threshold.
	GapScale float64
}

// Thresholds are the distance bounds derived from the data and Params.
type Thresholds struct {
	MeanDistance float64
	Cluster      float64
	Gap          float64
}

// Overlapping reports whether the cluster threshold exceeds the gap threshold.
// It happens exactly when factor² · k < 1. The cluster test runs first, so a
// distance between the two bounds extends the cluster and never emits a gap:
// gaps then only appear between pairs beyond the cluster threshold.
func (t Thresholds) Overlapping() bool {
	return t.Cluster > t.Gap
}

// ComputeThresholds derives the thresholds for sorted observations.
// Inputs with fewer than two observations yield zero thresholds.
func ComputeThresholds(sorted []int64, params Params) Thresholds {
	if len(sorted) < minSegmentableObservations {
		return Thresholds{}
	}

	var total float64

	for i := 1; i < len(sorted); i++ {
		total += distance(sorted[i-1], sorted[i])
	}

	mean := total / float64(len(sorted)-1)

	return Thresholds{
		MeanDistance: mean,
		Cluster:      mean / params.Factor,
		Gap:          params.Factor * mean * params.GapScale,
	}
}

// Segmentation is the output of a Segmenter.
type Segmentation struct {
	Segments   []Segment
	Thresholds Thresholds

	// Labels and Neighborhood are filled by the neighborhood strategy only.
	Labels       []PointLabel
	Neighborhood *NeighborhoodStats
}

// Segmenter partitions sorted observations into clusters and gaps.
type Segmenter interface {
	Segment(sorted []int64, params Params) Segmentation
}

// ScanSegmenter is the linear accumulator scan over consecutive distances.
type ScanSegmenter struct{}

// Segment walks consecutive pairs once. A pair within the cluster threshold
// extends the accumulator; any other pair flushes it (keeping it only when it
// reaches MinClusterSize) and emits a Gap when the pair exceeds the gap threshold.
func (ScanSegmenter) Segment(sorted []int64, params Params) Segmentation {
	thresholds := ComputeThresholds(sorted, params)
	if len(sorted) < minSegmentableObservations {
		return Segmentation{Thresholds: thresholds}
	}

	var (
		segments    []Segment
		accumulator []int64
	)

	flush := func() {
		if len(accumulator) > 0 && len(accumulator) >= params.MinClusterSize {
			segments = append(segments, NewCluster(accumulator))
		}

		accumulator = accumulator[:0]
	}

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		dist := distance(prev, curr)

		if dist <= thresholds.Cluster {
			if len(accumulator) == 0 {
				accumulator = append(accumulator, prev)
			}

			accumulator = append(accumulator, curr)

			continue
		}

		flush()

		if dist > thresholds.Gap {
			segments = append(segments, NewGap(prev, curr))
		}
	}

	flush()

	return Segmentation{Segments: segments, Thresholds: thresholds}
}

func distance(a, b int64) float64 {
	return float64(b) - float64(a)
}
