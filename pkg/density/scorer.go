package density

import "github.com/Sumatoshi-tech/lyagushka/pkg/alg/stats"

// ScoreStats holds the population statistics a Score call used.
type ScoreStats struct {
	DensityMean   float64
	DensityStdDev float64
	SpanMean      float64
	SpanStdDev    float64

	// ScoredClusters counts clusters with a defined density.
	ScoredClusters int
}

// Score assigns a z-score to every segment in place.
//
// Clusters are scored by density (elements per unit of span) against the
// other clusters with a non-zero span. Gaps are scored by span against the
// spans of all segments. A zero-span cluster is left unscored; a population
// with zero spread scores every member 0.
func Score(segments []Segment) ScoreStats {
	densities := make([]float64, 0, len(segments))
	spans := make([]float64, 0, len(segments))

	for _, seg := range segments {
		spans = append(spans, seg.SpanLength())

		if d, ok := segmentDensity(seg); ok {
			densities = append(densities, d)
		}
	}

	densityMean, densityStdDev := stats.MeanStdDev(densities)
	spanMean, spanStdDev := stats.MeanStdDev(spans)

	for _, seg := range segments {
		switch seg.Kind() {
		case KindCluster:
			d, ok := segmentDensity(seg)
			if !ok {
				continue
			}

			seg.setZScore(stats.ZScore(d, densityMean, densityStdDev))
		case KindGap:
			seg.setZScore(stats.ZScore(seg.SpanLength(), spanMean, spanStdDev))
		}
	}

	return ScoreStats{
		DensityMean:    densityMean,
		DensityStdDev:  densityStdDev,
		SpanMean:       spanMean,
		SpanStdDev:     spanStdDev,
		ScoredClusters: len(densities),
	}
}

func segmentDensity(seg Segment) (float64, bool) {
	cluster, ok := seg.(*Cluster)
	if !ok {
		return 0, false
	}

	return cluster.Density()
}
