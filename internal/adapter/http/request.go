package httpadapter

import (
	"time"

	"castads/internal/core/domain"
)

type generateEpisodeRequest struct {
	OwnerID           string `json:"owner_id"`
	Title             string `json:"title"`
	Topic             string `json:"topic"`
	VerifyImmediately bool   `json:"verify_immediately"`
}

type exposureEvent struct {
	Kind            string    `json:"kind"`
	Timestamp       time.Time `json:"timestamp"`
	DurationSeconds float64   `json:"duration_seconds"`
	SourceAddress   string    `json:"source_address"`
	AgentString     string    `json:"agent_string"`
	SubjectID       string    `json:"subject_id"`
}

type trackExposureRequest struct {
	Events []exposureEvent `json:"events"`
}

func (r trackExposureRequest) exposureEvents() []domain.ExposureEvent {
	out := make([]domain.ExposureEvent, 0, len(r.Events))
	for _, ev := range r.Events {
		out = append(out, domain.ExposureEvent{
			Kind:          domain.ExposureKind(ev.Kind),
			Timestamp:     ev.Timestamp,
			Duration:      time.Duration(ev.DurationSeconds * float64(time.Second)),
			SourceAddress: ev.SourceAddress,
			AgentString:   ev.AgentString,
			SubjectID:     ev.SubjectID,
		})
	}
	return out
}

type feedbackRequest struct {
	UserID  string `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type variationsRequest struct {
	Count int `json:"count"`
}
