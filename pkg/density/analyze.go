package density

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Strategy selects the segmentation algorithm.
type Strategy string

const (
	// StrategyScan is the linear accumulator scan.
	StrategyScan Strategy = "scan"
	// StrategyNeighborhood is the pairwise core-point expansion.
	StrategyNeighborhood Strategy = "neighborhood"
)

// Strategies lists the supported strategies.
var Strategies = []Strategy{StrategyScan, StrategyNeighborhood}

// Sentinel errors for invalid options.
var (
	ErrInvalidFactor         = errors.New("factor must be a positive finite number")
	ErrInvalidMinClusterSize = errors.New("min cluster size must be at least 1")
	ErrInvalidGapScale       = errors.New("gap scale must be a positive finite number")
	ErrInvalidLabelZ         = errors.New("label z must be a positive finite number")
	ErrUnknownStrategy       = errors.New("unknown strategy")
)

// Options configures Analyze. Zero GapScale, Strategy and LabelZ take their defaults.
type Options struct {
	Factor         float64
	MinClusterSize int
	GapScale       float64
	Strategy       Strategy
	LabelZ         float64
}

// DefaultOptions returns scan options with the default gap scale and label z.
func DefaultOptions(factor float64, minClusterSize int) Options {
	return Options{
		Factor:         factor,
		MinClusterSize: minClusterSize,
		GapScale:       DefaultGapScale,
		Strategy:       StrategyScan,
		LabelZ:         DefaultLabelZ,
	}
}

// WithDefaults fills unset optional fields.
func (o Options) WithDefaults() Options {
	if o.GapScale == 0 {
		o.GapScale = DefaultGapScale
	}

	if o.Strategy == "" {
		o.Strategy = StrategyScan
	}

	if o.LabelZ == 0 {
		o.LabelZ = DefaultLabelZ
	}

	return o
}

// Validate checks the options after defaults are applied.
func (o Options) Validate() error {
	o = o.WithDefaults()

	if !positiveFinite(o.Factor) {
		return fmt.Errorf("%w: %v", ErrInvalidFactor, o.Factor)
	}

	if o.MinClusterSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMinClusterSize, o.MinClusterSize)
	}

	if !positiveFinite(o.GapScale) {
		return fmt.Errorf("%w: %v", ErrInvalidGapScale, o.GapScale)
	}

	if !positiveFinite(o.LabelZ) {
		return fmt.Errorf("%w: %v", ErrInvalidLabelZ, o.LabelZ)
	}

	if !slices.Contains(Strategies, o.Strategy) {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, o.Strategy)
	}

	return nil
}

// Params returns the segmentation parameters.
func (o Options) Params() Params {
	o = o.WithDefaults()

	return Params{Factor: o.Factor, MinClusterSize: o.MinClusterSize, GapScale: o.GapScale}
}

// Segmenter returns the segmenter for the selected strategy.
func (o Options) Segmenter() (Segmenter, error) {
	o = o.WithDefaults()

	switch o.Strategy {
	case StrategyScan:
		return ScanSegmenter{}, nil
	case StrategyNeighborhood:
		return NeighborhoodSegmenter{LabelZ: o.LabelZ}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, o.Strategy)
	}
}

// ParseStrategy converts a name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(name)
	if !slices.Contains(Strategies, s) {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	return s, nil
}

// Result is the outcome of one analysis.
type Result struct {
	Segments []Segment
	Labels   []PointLabel
	Summary  Summary
}

// Analyze sorts a copy of values, segments it with the selected strategy and
// scores the segments. The caller's slice is not modified.
func Analyze(values []int64, opts Options) (*Result, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	opts = opts.WithDefaults()

	segmenter, err := opts.Segmenter()
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	segmentation := segmenter.Segment(sorted, opts.Params())
	scoreStats := Score(segmentation.Segments)

	return &Result{
		Segments: segmentation.Segments,
		Labels:   segmentation.Labels,
		Summary:  summarize(len(sorted), opts.Strategy, segmentation, scoreStats),
	}, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
