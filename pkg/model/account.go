package model

// Signup is the registration payload for both roles. Babysitter-only
// fields are ignored for parents.
type Signup struct {
	Name           string          `json:"name" validate:"required,min=2,max=100"`
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"required,min=6,max=72"`
	Age            int             `json:"age" validate:"required,min=16,max=120"`
	Contact        string          `json:"contact" validate:"required,e164"`
	Address        string          `json:"address" validate:"required,min=2,max=200"`
	Photo          string          `json:"photo,omitempty" validate:"omitempty,url"`
	Role           Role            `json:"role" validate:"required,role"`
	HourlyRate     float64         `json:"hourly_rate,omitempty" validate:"omitempty,gt=0,max=1000"`
	Experience     *int            `json:"experience,omitempty" validate:"omitempty,min=0,max=60"`
	Skills         []string        `json:"skills,omitempty" validate:"omitempty,max=30,dive,required,max=50"`
	Available      *bool           `json:"available,omitempty"`
	Languages      []string        `json:"languages,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
	Certifications []Certification `json:"certifications,omitempty" validate:"omitempty,max=20,dive"`
	Bio            string          `json:"bio,omitempty" validate:"omitempty,max=500"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AccountUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  AccountUser `json:"user"`
}
