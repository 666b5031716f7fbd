package model

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

const (
	MinReservationHours      = 1
	MaxReservationHours      = 12
	MaxReservationDescLength = 1000
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID           string            `json:"id,omitempty" bson:"_id,omitempty"`
	BabysitterID string            `json:"babysitter_id" bson:"babysitter_id"`
	ParentID     string            `json:"parent_id" bson:"parent_id"`
	Date         time.Time         `json:"date" bson:"date"`
	Time         string            `json:"time" bson:"time"`
	Duration     int               `json:"duration" bson:"duration"`
	Total        float64           `json:"total" bson:"total"`
	Status       ReservationStatus `json:"status" bson:"status"`
	Description  string            `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`

	Babysitter *PartySummary `json:"babysitter,omitempty" bson:"-"`
	Parent     *PartySummary `json:"parent,omitempty" bson:"-"`
}

// StartsAt combines the calendar date and the HH:MM wall clock in loc.
func (r *Reservation) StartsAt(loc *time.Location) (time.Time, bool) {
	clock, err := time.Parse("15:04", r.Time)
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := r.Date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), true
}

// IsUpcoming reports whether the reservation starts after now in loc.
func (r *Reservation) IsUpcoming(loc *time.Location, now time.Time) bool {
	start, ok := r.StartsAt(loc)
	return ok && start.After(now)
}

// ReservationStats aggregates every reservation of one party.
type ReservationStats struct {
	Total       int64   `json:"total" bson:"total"`
	HoursBooked int     `json:"hours_booked" bson:"hours"`
	Earnings    float64 `json:"earnings" bson:"earnings"`
}

type ReservationCreate struct {
	BabysitterID string `json:"babysitter_id" validate:"required,mongodb"`
	Date         string `json:"date" validate:"required,isodate"`
	Time         string `json:"time" validate:"required,hhmm"`
	Duration     int    `json:"duration" validate:"required,min=1,max=12"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type ReservationStatusUpdate struct {
	Status ReservationStatus `json:"status" validate:"required,reservation_status"`
}
