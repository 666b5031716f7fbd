package events

import (
	"time"

	"sitterhub/pkg/model"
)

type Type string

const (
	ReservationCreated       Type = "reservation.created"
	ReservationStatusChanged Type = "reservation.status_changed"
	ReservationCancelled     Type = "reservation.cancelled"
	ReservationDeleted       Type = "reservation.deleted"
	ReviewCreated            Type = "review.created"
)

const SchemaVersion = "1"

// Event is a domain fact. Key selects the partition so that events for the
// same aggregate keep their order.
type Event struct {
	Type    Type
	Key     string
	Payload any
}

type ReservationPayload struct {
	ReservationID  string                  `json:"reservation_id"`
	BabysitterID   string                  `json:"babysitter_id"`
	ParentID       string                  `json:"parent_id"`
	Status         model.ReservationStatus `json:"status"`
	PreviousStatus model.ReservationStatus `json:"previous_status,omitempty"`
	Date           time.Time               `json:"date"`
	Time           string                  `json:"time"`
	Duration       int                     `json:"duration"`
	Total          float64                 `json:"total"`
	OccurredAt     time.Time               `json:"occurred_at"`
}

type ReviewPayload struct {
	ReviewID     string    `json:"review_id"`
	BabysitterID string    `json:"babysitter_id"`
	ParentID     string    `json:"parent_id"`
	Rating       int       `json:"rating"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func NewReservationEvent(eventType Type, r *model.Reservation, previous model.ReservationStatus) Event {
	return Event{
		Type: eventType,
		Key:  r.ID,
		Payload: ReservationPayload{
			ReservationID:  r.ID,
			BabysitterID:   r.BabysitterID,
			ParentID:       r.ParentID,
			Status:         r.Status,
			PreviousStatus: previous,
			Date:           r.Date,
			Time:           r.Time,
			Duration:       r.Duration,
			Total:          r.Total,
			OccurredAt:     time.Now().UTC(),
		},
	}
}

// Reviews are keyed by babysitter so that recomputes for one babysitter are serialized.
func NewReviewEvent(r *model.Review) Event {
	return Event{
		Type: ReviewCreated,
		Key:  r.BabysitterID,
		Payload: ReviewPayload{
			ReviewID:     r.ID,
			BabysitterID: r.BabysitterID,
			ParentID:     r.ParentID,
			Rating:       r.Rating,
			OccurredAt:   time.Now().UTC(),
		},
	}
}
