package density

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborhoodSegmenter_ConcreteScenario(t *testing.T) {
	t.Parallel()

	seg := NeighborhoodSegmenter{LabelZ: DefaultLabelZ}.Segment(
		[]int64{1, 2, 3, 50, 51, 52, 100}, scanParams(1.0, 2))

	require.Len(t, seg.Segments, 4)
	assert.Equal(t, []int64{1, 2, 3}, seg.Segments[0].(*Cluster).Elements())
	assert.Equal(t, KindGap, seg.Segments[1].Kind())
	assert.Equal(t, int64(3), seg.Segments[1].Start())
	assert.Equal(t, []int64{50, 51, 52}, seg.Segments[2].(*Cluster).Elements())
	assert.Equal(t, KindGap, seg.Segments[3].Kind())
	assert.Equal(t, int64(100), seg.Segments[3].End())
}

func TestNeighborhoodSegmenter_Labels(t *testing.T) {
	t.Parallel()

	seg := NeighborhoodSegmenter{LabelZ: DefaultLabelZ}.Segment(
		[]int64{1, 2, 3, 50, 51, 52, 100}, scanParams(1.0, 2))

	require.Len(t, seg.Labels, 7)

	last := seg.Labels[6]
	assert.Equal(t, int64(100), last.Value)
	assert.InDelta(t, 48.0, last.NearestDistance, 1e-9)
	assert.Equal(t, RoleRepeller, last.Role)

	for _, label := range seg.Labels[:6] {
		assert.Equal(t, RoleNeutral, label.Role)
		assert.InDelta(t, 1.0, label.NearestDistance, 1e-9)
	}

	require.NotNil(t, seg.Neighborhood)
	assert.Equal(t, 1, seg.Neighborhood.Repellers)
	assert.Zero(t, seg.Neighborhood.Attractors)
	assert.InDelta(t, 1.0, seg.Neighborhood.P05Nearest, 1e-9)
	assert.InDelta(t, 48.0, seg.Neighborhood.P95Nearest, 1e-9)
	assert.InDelta(t, 54.0/7.0, seg.Neighborhood.MeanNearest, 1e-9)
}

func TestNeighborhoodSegmenter_IdenticalValuesAreNeutral(t *testing.T) {
	t.Parallel()

	seg := NeighborhoodSegmenter{LabelZ: DefaultLabelZ}.Segment([]int64{5, 5, 5}, scanParams(1.0, 2))

	require.Len(t, seg.Segments, 1)
	assert.Equal(t, 3, seg.Segments[0].NumElements())

	for _, label := range seg.Labels {
		assert.Equal(t, RoleNeutral, label.Role)
		assert.Zero(t, label.ZScore)
	}
}

func TestNeighborhoodSegmenter_BorderPointsJoinCluster(t *testing.T) {
	t.Parallel()

	// 0 and 30 have one neighbor each and join through the core points 10 and 20.
	seg := NeighborhoodSegmenter{LabelZ: DefaultLabelZ}.Segment([]int64{0, 10, 20, 30}, scanParams(1.0, 3))

	require.Len(t, seg.Segments, 1)
	assert.Equal(t, []int64{0, 10, 20, 30}, seg.Segments[0].(*Cluster).Elements())
}

func TestNeighborhoodSegmenter_ShortInput(t *testing.T) {
	t.Parallel()

	seg := NeighborhoodSegmenter{LabelZ: DefaultLabelZ}.Segment([]int64{3}, scanParams(1.0, 1))
	assert.Empty(t, seg.Segments)
	assert.Empty(t, seg.Labels)
	assert.Nil(t, seg.Neighborhood)
}

func TestNeighborhoodSegmenter_Role(t *testing.T) {
	t.Parallel()

	n := NeighborhoodSegmenter{LabelZ: 1.5}

	assert.Equal(t, RoleRepeller, n.role(1.5))
	assert.Equal(t, RoleAttractor, n.role(-2))
	assert.Equal(t, RoleNeutral, n.role(1.49))
	assert.Equal(t, RoleNeutral, n.role(0))
}

func duplicateBlocks(size int) []int64 {
	data := make([]int64, 0, 2*size)

	for range size {
		data = append(data, 10)
	}

	for range size {
		data = append(data, 1000)
	}

	return data
}

func TestNeighborhoodSegmenter_DuplicateBlocks(t *testing.T) {
	t.Parallel()

	data := duplicateBlocks(500)

	seg := NeighborhoodSegmenter{LabelZ: DefaultLabelZ}.Segment(data, scanParams(1.0, 2))

	require.Len(t, seg.Segments, 3)
	assert.Equal(t, 500, seg.Segments[0].NumElements())
	assert.Equal(t, KindGap, seg.Segments[1].Kind())
	assert.Equal(t, int64(10), seg.Segments[1].Start())
	assert.Equal(t, int64(1000), seg.Segments[1].End())
	assert.Equal(t, 500, seg.Segments[2].NumElements())

	require.Len(t, seg.Labels, len(data))
	assert.Zero(t, seg.Labels[0].NearestDistance)
	assert.Zero(t, seg.Labels[len(data)-1].NearestDistance)
}

// Not parallel: allocation counts are process-wide.
func TestExpandClusters_AllocationsIndependentOfDuplicates(t *testing.T) {
	data := duplicateBlocks(2000)
	eps := ComputeThresholds(data, scanParams(1.0, 2)).Cluster

	allocs := testing.AllocsPerRun(1, func() {
		membership := expandClusters(data, eps, 2)
		require.Equal(t, 1, membership[0])
		require.Equal(t, 2, membership[len(data)-1])
	})

	assert.LessOrEqual(t, allocs, 16.0)
}

func TestRegionQuery(t *testing.T) {
	t.Parallel()

	sorted := []int64{0, 5, 5, 9, 20, 21}

	tests := []struct {
		name   string
		idx    int
		eps    float64
		lo, hi int
	}{
		{name: "first", idx: 0, eps: 5, lo: 0, hi: 3},
		{name: "duplicates", idx: 1, eps: 4, lo: 1, hi: 4},
		{name: "isolated_zero_eps", idx: 3, eps: 0, lo: 3, hi: 4},
		{name: "last", idx: 5, eps: 1, lo: 4, hi: 6},
		{name: "everything", idx: 2, eps: 100, lo: 0, hi: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lo, hi := regionQuery(sorted, tt.idx, tt.eps)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestNeighborhoodSegmenter_NearestMatchesPairwise(t *testing.T) {
	t.Parallel()

	sorted := []int64{-7, 0, 0, 3, 11, 12, 40}

	seg := NeighborhoodSegmenter{LabelZ: DefaultLabelZ}.Segment(sorted, scanParams(1.0, 2))
	require.Len(t, seg.Labels, len(sorted))

	for i, label := range seg.Labels {
		want := math.Inf(1)

		for j, v := range sorted {
			if j != i {
				want = min(want, math.Abs(float64(v-sorted[i])))
			}
		}

		assert.InDelta(t, want, label.NearestDistance, 1e-9, "value %d", label.Value)
	}
}
