package mongo

const (
	BabysittersCollection  = "Babysitters"
	ParentsCollection      = "Parents"
	ReservationsCollection = "Reservations"
	ReviewsCollection      = "Reviews"
)
