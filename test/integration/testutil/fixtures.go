package testutil

import (
	"net/http"
	"testing"

	"sitterhub/pkg/model"
)

type SignupBuilder struct {
	req model.Signup
}

func NewParentSignup(email string) *SignupBuilder {
	return &SignupBuilder{
		req: model.Signup{
			Name:     "Test Parent",
			Email:    email,
			Password: "secret123",
			Age:      35,
			Contact:  "+33612345678",
			Address:  "10 rue de Rivoli, Paris",
			Role:     model.RoleParent,
		},
	}
}

func NewBabysitterSignup(email string) *SignupBuilder {
	experience := 3
	return &SignupBuilder{
		req: model.Signup{
			Name:       "Test Babysitter",
			Email:      email,
			Password:   "secret123",
			Age:        24,
			Contact:    "+33698765432",
			Address:    "5 avenue Foch, Paris",
			Role:       model.RoleBabysitter,
			HourlyRate: 15,
			Experience: &experience,
			Skills:     []string{"first aid", "cooking"},
		},
	}
}

func (b *SignupBuilder) WithHourlyRate(rate float64) *SignupBuilder {
	b.req.HourlyRate = rate
	return b
}

func (b *SignupBuilder) Build() model.Signup {
	return b.req
}

// SignUp registers the account and returns its token and id.
func SignUp(t *testing.T, accounts *Client, req model.Signup) (string, string) {
	t.Helper()

	resp := accounts.POST(t, "/api/v1/auth/signup", req, "")
	AssertStatusCode(t, resp, http.StatusCreated)

	var result model.AuthResult
	resp.Data(t, &result)
	if result.Token == "" || result.User.ID == "" {
		t.Fatalf("signup returned no credentials: %s", resp.Body)
	}
	return result.Token, result.User.ID
}
