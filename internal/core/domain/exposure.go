package domain

import "time"

// ExposureKind classifies a raw listener event.
type ExposureKind string

const (
	ExposureView       ExposureKind = "view"
	ExposureImpression ExposureKind = "impression"
	ExposureClick      ExposureKind = "click"
	ExposureConversion ExposureKind = "conversion"
)

// ExposureEvent is one raw listener event reported for a placement.
type ExposureEvent struct {
	Kind          ExposureKind  `json:"kind"`
	Timestamp     time.Time     `json:"timestamp"`
	Duration      time.Duration `json:"duration"`
	SourceAddress string        `json:"source_address"`
	AgentString   string        `json:"agent_string"`
	SubjectID     string        `json:"subject_id"`
}

// CountExposure tallies events by kind. Unknown kinds count as views.
func CountExposure(events []ExposureEvent) ExposureDelta {
	var d ExposureDelta
	for _, ev := range events {
		switch ev.Kind {
		case ExposureImpression:
			d.Impressions++
		case ExposureClick:
			d.Clicks++
		case ExposureConversion:
			d.Conversions++
		default:
			d.Views++
		}
	}
	return d
}
