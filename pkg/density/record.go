package density

import (
	"encoding/json"
	"fmt"
)

// SegmentRecord is the serialized form of a Segment. Field order is the
// external JSON order.
type SegmentRecord struct {
	SpanLength  float64  `json:"span_length"        yaml:"span_length"`
	NumElements int      `json:"num_elements"       yaml:"num_elements"`
	Centroid    float64  `json:"centroid"           yaml:"centroid"`
	ZScore      *float64 `json:"z_score"            yaml:"z_score"`
	Elements    []int64  `json:"elements,omitempty" yaml:"elements,omitempty"`
	Start       int64    `json:"start"              yaml:"start"`
	End         int64    `json:"end"                yaml:"end"`
}

// IsGap reports whether the record describes a gap.
func (r SegmentRecord) IsGap() bool {
	return r.NumElements == 0
}

// NewRecord converts one segment.
func NewRecord(seg Segment) SegmentRecord {
	rec := SegmentRecord{
		SpanLength:  seg.SpanLength(),
		NumElements: seg.NumElements(),
		Centroid:    seg.Centroid(),
		Start:       seg.Start(),
		End:         seg.End(),
	}

	if z, ok := seg.ZScore(); ok {
		rec.ZScore = &z
	}

	if cluster, ok := seg.(*Cluster); ok {
		rec.Elements = cluster.Elements()
	}

	return rec
}

// ToRecords converts segments in order. The result is never nil.
func ToRecords(segments []Segment) []SegmentRecord {
	records := make([]SegmentRecord, 0, len(segments))

	for _, seg := range segments {
		records = append(records, NewRecord(seg))
	}

	return records
}

// Records returns the serialized segments of the result.
func (r *Result) Records() []SegmentRecord {
	return ToRecords(r.Segments)
}

// MarshalRecords encodes records as a pretty-printed JSON array.
func MarshalRecords(records []SegmentRecord) ([]byte, error) {
	if records == nil {
		records = []SegmentRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize segments: %w", err)
	}

	return data, nil
}

// AnalyzeJSON runs the scan strategy with default options and returns the
// segments as a pretty-printed JSON array.
func AnalyzeJSON(values []int64, factor float64, minClusterSize int) (string, error) {
	result, err := Analyze(values, DefaultOptions(factor, minClusterSize))
	if err != nil {
		return "", err
	}

	data, err := MarshalRecords(result.Records())
	if err != nil {
		return "", err
	}

	return string(data), nil
}
