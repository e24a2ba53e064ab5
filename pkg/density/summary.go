package density

// Summary holds aggregate statistics for one analysis.
type Summary struct {
	Observations     int      `json:"observations"      yaml:"observations"`
	Clusters         int      `json:"clusters"          yaml:"clusters"`
	Gaps             int      `json:"gaps"              yaml:"gaps"`
	ClusteredPoints  int      `json:"clustered_points"  yaml:"clustered_points"`
	DroppedPoints    int      `json:"dropped_points"    yaml:"dropped_points"`
	MeanDistance     float64  `json:"mean_distance"     yaml:"mean_distance"`
	ClusterThreshold float64  `json:"cluster_threshold" yaml:"cluster_threshold"`
	GapThreshold     float64  `json:"gap_threshold"     yaml:"gap_threshold"`
	DensityMean      float64  `json:"density_mean"      yaml:"density_mean"`
	DensityStdDev    float64  `json:"density_stddev"    yaml:"density_stddev"`
	SpanMean         float64  `json:"span_mean"         yaml:"span_mean"`
	SpanStdDev       float64  `json:"span_stddev"       yaml:"span_stddev"`
	Strategy         Strategy `json:"strategy"          yaml:"strategy"`

	// Neighborhood is set for the neighborhood strategy only.
	Neighborhood *NeighborhoodStats `json:"neighborhood,omitempty" yaml:"neighborhood,omitempty"`

	// ThresholdsOverlap is true when the cluster threshold exceeds the gap
	// threshold; distances between the two are clustered, not reported as gaps.
	ThresholdsOverlap bool `json:"thresholds_overlap" yaml:"thresholds_overlap"`
}

func summarize(observations int, strategy Strategy, seg Segmentation, scores ScoreStats) Summary {
	summary := Summary{
		Observations:      observations,
		MeanDistance:      seg.Thresholds.MeanDistance,
		ClusterThreshold:  seg.Thresholds.Cluster,
		GapThreshold:      seg.Thresholds.Gap,
		DensityMean:       scores.DensityMean,
		DensityStdDev:     scores.DensityStdDev,
		SpanMean:          scores.SpanMean,
		SpanStdDev:        scores.SpanStdDev,
		Strategy:          strategy,
		Neighborhood:      seg.Neighborhood,
		ThresholdsOverlap: seg.Thresholds.Overlapping(),
	}

	for _, s := range seg.Segments {
		switch s.Kind() {
		case KindCluster:
			summary.Clusters++
			summary.ClusteredPoints += s.NumElements()
		case KindGap:
			summary.Gaps++
		}
	}

	summary.DroppedPoints = observations - summary.ClusteredPoints

	return summary
}
