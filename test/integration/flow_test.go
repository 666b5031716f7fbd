package integration

import (
	"net/http"
	"testing"
	"time"

	"sitterhub/pkg/model"
	"sitterhub/test/integration/testutil"

	"go.mongodb.org/mongo-driver/bson"
)

func TestReservationAndReviewFlow(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, svc := env.Setup(t)
	defer env.Cleanup(t, mongo)

	parentToken, _ := testutil.SignUp(t, svc.Accounts, testutil.NewParentSignup("parent@example.com").Build())
	sitterToken, sitterID := testutil.SignUp(t, svc.Accounts,
		testutil.NewBabysitterSignup("sitter@example.com").WithHourlyRate(18).Build())

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	resp := svc.Reservations.POST(t, "/api/v1/reservations", model.ReservationCreate{
		BabysitterID: sitterID,
		Date:         date,
		Time:         "18:30",
		Duration:     3,
	}, parentToken)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var reservation model.Reservation
	resp.Data(t, &reservation)
	if reservation.Total != 54 || reservation.Status != model.StatusPending {
		t.Fatalf("reservation = %+v, want total 54 pending", reservation)
	}

	newRate := 30.0
	resp = svc.Accounts.PATCH(t, "/api/v1/profile", model.BabysitterUpdate{HourlyRate: &newRate}, sitterToken)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = svc.Reservations.GET(t, "/api/v1/reservations", parentToken)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var listed []model.Reservation
	resp.Data(t, &listed)
	if len(listed) != 1 || listed[0].Total != 54 {
		t.Fatalf("reservations after rate change = %+v, want one with total 54", listed)
	}

	resp = svc.Reservations.PATCH(t, "/api/v1/reservations/"+reservation.ID+"/status",
		model.ReservationStatusUpdate{Status: model.StatusConfirmed}, sitterToken)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = svc.Reservations.PATCH(t, "/api/v1/reservations/"+reservation.ID+"/status",
		model.ReservationStatusUpdate{Status: model.StatusPending}, sitterToken)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	review := model.ReviewCreate{Rating: 4, Comment: "Great evening, the kids loved her."}
	resp = svc.Reviews.POST(t, "/api/v1/reviews/"+sitterID, review, parentToken)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = svc.Reviews.POST(t, "/api/v1/reviews/"+sitterID, review, parentToken)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	resp = svc.Accounts.GET(t, "/api/v1/babysitters/"+sitterID, "")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var detail model.BabysitterDetail
	resp.Data(t, &detail)
	if detail.Rating != 4 || detail.TotalReviews != 1 || len(detail.Reviews) != 1 {
		t.Errorf("babysitter aggregate = %v/%d with %d reviews", detail.Rating, detail.TotalReviews, len(detail.Reviews))
	}

	if n := mongo.CountDocuments(t, "Reviews", bson.M{"babysitter_id": sitterID}); n != 1 {
		t.Errorf("stored reviews = %d, want 1", n)
	}
}

func TestSignupConflictAcrossRoles(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, svc := env.Setup(t)
	defer env.Cleanup(t, mongo)

	testutil.SignUp(t, svc.Accounts, testutil.NewParentSignup("shared@example.com").Build())

	resp := svc.Accounts.POST(t, "/api/v1/auth/signup",
		testutil.NewBabysitterSignup("Shared@Example.com").Build(), "")
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, svc := env.Setup(t)
	defer env.Cleanup(t, mongo)

	token, _ := testutil.SignUp(t, svc.Accounts, testutil.NewParentSignup("logout@example.com").Build())

	testutil.AssertStatusCode(t, svc.Accounts.GET(t, "/api/v1/profile", token), http.StatusOK)
	testutil.AssertStatusCode(t, svc.Accounts.POST(t, "/api/v1/auth/logout", nil, token), http.StatusOK)
	testutil.AssertStatusCode(t, svc.Accounts.GET(t, "/api/v1/profile", token), http.StatusUnauthorized)
}
