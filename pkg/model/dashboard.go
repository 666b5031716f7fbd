package model

import "time"

// RecentLimit bounds the recent reservations and reviews shown on dashboards.
const RecentLimit = 5

type BabysitterDashboard struct {
	Available            bool            `json:"available"`
	UpcomingReservations []*Reservation  `json:"upcomingReservations"`
	RecentReservations   []*Reservation  `json:"recentReservations"`
	RecentReviews        []*Review       `json:"recentReviews"`
	Stats                BabysitterStats `json:"stats"`
}

type BabysitterStats struct {
	TotalReservations         int64   `json:"totalReservations"`
	UpcomingReservationsCount int     `json:"upcomingReservationsCount"`
	TotalReviews              int     `json:"totalReviews"`
	TotalEarnings             float64 `json:"totalEarnings"`
	AverageRating             float64 `json:"averageRating"`
}

type ParentDashboard struct {
	RecentReservations   []*Reservation    `json:"recentReservations"`
	UpcomingReservations []*Reservation    `json:"upcomingReservations"`
	Favorites            []*BabysitterCard `json:"favorites"`
	Stats                ParentStats       `json:"stats"`
}

type ParentStats struct {
	TotalReservations         int64 `json:"totalReservations"`
	UpcomingReservationsCount int   `json:"upcomingReservationsCount"`
	FavoritesCount            int   `json:"favoritesCount"`
	TotalHoursBooked          int   `json:"totalHoursBooked"`
}

// Upcoming keeps the reservations starting after now in loc, preserving order.
func Upcoming(reservations []*Reservation, loc *time.Location, now time.Time) []*Reservation {
	out := make([]*Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.IsUpcoming(loc, now) {
			out = append(out, r)
		}
	}
	return out
}
