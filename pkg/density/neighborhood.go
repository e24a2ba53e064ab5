package density

import (
	"cmp"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Sumatoshi-tech/lyagushka/pkg/alg/stats"
)

// DefaultLabelZ is the nearest-neighbor z-score magnitude that marks a point
// as an attractor or a repeller.
const DefaultLabelZ = 2.0

// Quantiles reported for nearest-neighbor distances.
const (
	lowerQuantile = 0.05
	upperQuantile = 0.95
)

// unassigned marks a point that belongs to no cluster yet.
const unassigned = 0

// Role classifies a point by how crowded its neighborhood is.
type Role string

const (
	// RoleAttractor marks a point whose nearest neighbor is unusually close.
	RoleAttractor Role = "attractor"
	// RoleRepeller marks a point whose nearest neighbor is unusually far.
	RoleRepeller Role = "repeller"
	// RoleNeutral marks every other point.
	RoleNeutral Role = "neutral"
)

// PointLabel describes one observation in the neighborhood strategy.
type PointLabel struct {
	Value           int64   `json:"value"            yaml:"value"`
	NearestDistance float64 `json:"nearest_distance" yaml:"nearest_distance"`
	ZScore          float64 `json:"z_score"          yaml:"z_score"`
	Role            Role    `json:"role"             yaml:"role"`
}

// NeighborhoodStats summarizes nearest-neighbor distances.
type NeighborhoodStats struct {
	MeanNearest   float64 `json:"mean_nearest"   yaml:"mean_nearest"`
	StdDevNearest float64 `json:"stddev_nearest" yaml:"stddev_nearest"`
	P05Nearest    float64 `json:"p05_nearest"    yaml:"p05_nearest"`
	P95Nearest    float64 `json:"p95_nearest"    yaml:"p95_nearest"`
	Attractors    int     `json:"attractors"     yaml:"attractors"`
	Repellers     int     `json:"repellers"      yaml:"repellers"`
}

// NeighborhoodSegmenter grows clusters from core points: a point is core when
// at least MinClusterSize observations, itself included, lie within the
// cluster threshold.
type NeighborhoodSegmenter struct {
	// LabelZ is the z-score magnitude for attractor and repeller labels.
	LabelZ float64
}

// Segment expands clusters through core neighborhoods, then emits a gap for
// every consecutive pair outside a single cluster that exceeds the gap
// threshold. Segments are ordered by start.
func (n NeighborhoodSegmenter) Segment(sorted []int64, params Params) Segmentation {
	thresholds := ComputeThresholds(sorted, params)
	if len(sorted) < minSegmentableObservations {
		return Segmentation{Thresholds: thresholds}
	}

	membership := expandClusters(sorted, thresholds.Cluster, params.MinClusterSize)

	var segments []Segment

	for _, members := range groupMembers(sorted, membership) {
		if len(members) >= params.MinClusterSize {
			segments = append(segments, NewCluster(members))
		}
	}

	for i := 1; i < len(sorted); i++ {
		if membership[i] != unassigned && membership[i] == membership[i-1] {
			continue
		}

		if distance(sorted[i-1], sorted[i]) > thresholds.Gap {
			segments = append(segments, NewGap(sorted[i-1], sorted[i]))
		}
	}

	slices.SortStableFunc(segments, func(a, b Segment) int {
		return cmp.Or(cmp.Compare(a.Start(), b.Start()), cmp.Compare(a.End(), b.End()))
	})

	labels, neighborhood := n.label(sorted)

	return Segmentation{
		Segments:     segments,
		Thresholds:   thresholds,
		Labels:       labels,
		Neighborhood: neighborhood,
	}
}

// expandClusters assigns a cluster id (starting at 1) to every reachable point.
// Each point enters the seed queue at most once, so the queue never outgrows
// the input.
func expandClusters(sorted []int64, eps float64, minPoints int) []int {
	membership := make([]int, len(sorted))
	visited := make([]bool, len(sorted))
	queued := make([]bool, len(sorted))
	seeds := make([]int, 0, len(sorted))
	clusterID := unassigned

	enqueue := func(lo, hi int) {
		for k := lo; k < hi; k++ {
			if membership[k] == unassigned && !queued[k] {
				queued[k] = true
				seeds = append(seeds, k)
			}
		}
	}

	for i := range sorted {
		if visited[i] {
			continue
		}

		visited[i] = true

		lo, hi := regionQuery(sorted, i, eps)
		if hi-lo < minPoints {
			continue
		}

		clusterID++
		membership[i] = clusterID
		seeds = seeds[:0]

		enqueue(lo, hi)

		for head := 0; head < len(seeds); head++ {
			j := seeds[head]
			membership[j] = clusterID

			if visited[j] {
				continue
			}

			visited[j] = true

			if nlo, nhi := regionQuery(sorted, j, eps); nhi-nlo >= minPoints {
				enqueue(nlo, nhi)
			}
		}
	}

	return membership
}

// regionQuery returns the half-open index range of observations within eps of
// sorted[idx]. On sorted input the neighborhood is contiguous.
func regionQuery(sorted []int64, idx int, eps float64) (lo, hi int) {
	center := sorted[idx]

	lo = sort.Search(idx, func(k int) bool {
		return distance(sorted[k], center) <= eps
	})
	hi = idx + 1 + sort.Search(len(sorted)-idx-1, func(k int) bool {
		return distance(center, sorted[idx+1+k]) > eps
	})

	return lo, hi
}

// groupMembers collects cluster members in ascending order, one slice per id.
func groupMembers(sorted []int64, membership []int) [][]int64 {
	var groups [][]int64

	index := make(map[int]int)

	for i, id := range membership {
		if id == unassigned {
			continue
		}

		pos, ok := index[id]
		if !ok {
			pos = len(groups)
			index[id] = pos
			groups = append(groups, nil)
		}

		groups[pos] = append(groups[pos], sorted[i])
	}

	return groups
}

func (n NeighborhoodSegmenter) label(sorted []int64) ([]PointLabel, *NeighborhoodStats) {
	nearest := make([]float64, len(sorted))

	for i := range sorted {
		nearest[i] = math.Inf(1)

		if i > 0 {
			nearest[i] = distance(sorted[i-1], sorted[i])
		}

		if i+1 < len(sorted) {
			nearest[i] = min(nearest[i], distance(sorted[i], sorted[i+1]))
		}
	}

	mean, stddev := stats.MeanStdDev(nearest)

	ordered := slices.Clone(nearest)
	slices.Sort(ordered)

	summary := &NeighborhoodStats{
		MeanNearest:   mean,
		StdDevNearest: stddev,
		P05Nearest:    stat.Quantile(lowerQuantile, stat.Empirical, ordered, nil),
		P95Nearest:    stat.Quantile(upperQuantile, stat.Empirical, ordered, nil),
	}

	labels := make([]PointLabel, len(sorted))

	for i, v := range sorted {
		z := stats.ZScore(nearest[i], mean, stddev)
		role := n.role(z)

		switch role {
		case RoleAttractor:
			summary.Attractors++
		case RoleRepeller:
			summary.Repellers++
		case RoleNeutral:
		}

		labels[i] = PointLabel{Value: v, NearestDistance: nearest[i], ZScore: z, Role: role}
	}

	return labels, summary
}

func (n NeighborhoodSegmenter) role(z float64) Role {
	switch {
	case z >= n.LabelZ:
		return RoleRepeller
	case z <= -n.LabelZ:
		return RoleAttractor
	default:
		return RoleNeutral
	}
}
