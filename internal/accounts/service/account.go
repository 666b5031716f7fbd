package service

import (
	"context"
	"errors"
	"sync"
	"time"

	accountserrors "sitterhub/internal/accounts/errors"
	"sitterhub/internal/accounts/repository"
	"sitterhub/internal/accounts/validator"
	reservationsrepo "sitterhub/internal/reservations/repository"
	"sitterhub/pkg/auth"
	"sitterhub/pkg/config"
	apperrors "sitterhub/pkg/errors"
	"sitterhub/pkg/model"
	"sitterhub/pkg/sanitizer"
)

const invalidCredentials = "Invalid email or password"

type AccountService interface {
	Signup(ctx context.Context, req *model.Signup) (*model.AuthResult, error)
	Login(ctx context.Context, req *model.Login) (*model.AuthResult, error)
	Logout(ctx context.Context) error

	// Profile returns a *model.Parent or a *model.Babysitter depending on
	// the caller's role.
	Profile(ctx context.Context) (any, error)
	// UpdateProfile ignores babysitter-only fields for parents.
	UpdateProfile(ctx context.Context, req *model.BabysitterUpdate) (any, error)

	AddFavorite(ctx context.Context, babysitterID string) ([]*model.BabysitterCard, error)
	Favorites(ctx context.Context) ([]*model.BabysitterCard, error)
	Dashboard(ctx context.Context) (*model.ParentDashboard, error)
}

type TokenIssuer interface {
	Issue(userID string, role model.Role) (string, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
}

type ReservationReader interface {
	FindByParty(ctx context.Context, role model.Role, partyID string, sort reservationsrepo.SortOrder, limit int) ([]*model.Reservation, error)
	Stats(ctx context.Context, role model.Role, partyID string) (*model.ReservationStats, error)
}

type PartyDirectory interface {
	BabysitterExists(ctx context.Context, babysitterID string) error
	AttachReservationParties(ctx context.Context, reservations ...*model.Reservation) error
}

type accountService struct {
	repo         repository.AccountRepository
	reservations ReservationReader
	directory    PartyDirectory
	tokens       TokenIssuer
	revocations  TokenRevoker
	validator    *validator.AccountValidator
	cfg          *config.Config
	now          func() time.Time
	dummyHash    func() string
}

func NewAccountService(
	repo repository.AccountRepository,
	reservations ReservationReader,
	directory PartyDirectory,
	tokens TokenIssuer,
	revocations TokenRevoker,
	validator *validator.AccountValidator,
	cfg *config.Config,
) AccountService {
	s := &accountService{
		repo:         repo,
		reservations: reservations,
		directory:    directory,
		tokens:       tokens,
		revocations:  revocations,
		validator:    validator,
		cfg:          cfg,
		now:          time.Now,
	}
	s.dummyHash = sync.OnceValue(func() string {
		hash, err := auth.HashPassword("sitterhub-unknown-account", cfg.BcryptCost)
		if err != nil {
			return ""
		}
		return hash
	})
	return s
}

func (s *accountService) Signup(ctx context.Context, req *model.Signup) (*model.AuthResult, error) {
	if req.Role == "" {
		req.Role = model.RoleParent
	}
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Address = sanitizer.NormalizeAddress(req.Address)
	req.Contact = normalizeOr(req.Contact, sanitizer.NormalizePhone)
	req.Photo = normalizeOr(req.Photo, sanitizer.NormalizeURL)
	req.Skills = sanitizer.NormalizeSkills(req.Skills)
	req.Languages = sanitizer.NormalizeLanguages(req.Languages)
	req.Bio = sanitizer.NormalizeText(req.Bio)

	if err := s.validator.ValidateSignup(req); err != nil {
		s.cfg.Log.Warn("Signup validation failed",
			"email", req.Email,
			"role", req.Role,
			"error", err,
		)
		return nil, apperrors.ValidationFields("Signup validation failed", err)
	}

	taken, err := s.repo.EmailTaken(ctx, req.Email)
	if err != nil {
		s.cfg.Log.Error("Failed to check email availability", "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}
	if taken {
		return nil, s.emailConflict(req.Email)
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "error", err)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	user := model.AccountUser{Name: req.Name, Email: req.Email, Role: req.Role}
	switch req.Role {
	case model.RoleBabysitter:
		babysitter := newBabysitter(req, hash)
		err = s.repo.CreateBabysitter(ctx, babysitter)
		user.ID = babysitter.ID
	default:
		parent := &model.Parent{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Age:          req.Age,
			Contact:      req.Contact,
			Address:      req.Address,
			Photo:        req.Photo,
			Favorites:    []string{},
		}
		err = s.repo.CreateParent(ctx, parent)
		user.ID = parent.ID
	}
	if err != nil {
		if errors.Is(err, accountserrors.ErrDuplicateEmail) {
			return nil, s.emailConflict(req.Email)
		}
		s.cfg.Log.Error("Failed to create account",
			"email", req.Email,
			"role", req.Role,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create account", err)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Account created successfully",
		"id", user.ID,
		"role", user.Role,
	)
	return result, nil
}

func newBabysitter(req *model.Signup, hash string) *model.Babysitter {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	experience := 0
	if req.Experience != nil {
		experience = *req.Experience
	}

	babysitter := &model.Babysitter{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Age:            req.Age,
		Contact:        req.Contact,
		Address:        req.Address,
		Photo:          req.Photo,
		HourlyRate:     req.HourlyRate,
		Experience:     experience,
		Skills:         req.Skills,
		Available:      available,
		Languages:      req.Languages,
		Certifications: req.Certifications,
		Availability:   []model.AvailabilitySlot{},
		Bio:            req.Bio,
	}
	if babysitter.Skills == nil {
		babysitter.Skills = []string{}
	}
	if babysitter.Languages == nil {
		babysitter.Languages = []string{}
	}
	if babysitter.Certifications == nil {
		babysitter.Certifications = []model.Certification{}
	}
	return babysitter
}

func (s *accountService) emailConflict(email string) error {
	s.cfg.Log.Warn("Signup rejected: email already registered", "email", email)
	return apperrors.Conflict("An account with this email already exists")
}

func (s *accountService) Login(ctx context.Context, req *model.Login) (*model.AuthResult, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, apperrors.ValidationFields("Login validation failed", err)
	}

	creds, err := s.repo.FindCredentials(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, accountserrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to look up credentials", "error", err)
			return nil, apperrors.Internal("Failed to sign in", err)
		}
		// Unknown emails still pay for one bcrypt comparison.
		auth.CheckPassword(s.dummyHash(), req.Password)
		s.cfg.Log.Warn("Login failed: unknown email", "email", req.Email)
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	if !auth.CheckPassword(creds.PasswordHash, req.Password) {
		s.cfg.Log.Warn("Login failed: wrong password", "id", creds.ID)
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	result, err := s.issue(model.AccountUser{
		ID:    creds.ID,
		Name:  creds.Name,
		Email: creds.Email,
		Role:  creds.Role,
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("User logged in successfully",
		"id", creds.ID,
		"role", creds.Role,
	)
	return result, nil
}

func (s *accountService) issue(user model.AccountUser) (*model.AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "id", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to issue token", err)
	}
	return &model.AuthResult{Token: token, User: user}, nil
}

func (s *accountService) Logout(ctx context.Context) error {
	identity, err := caller(ctx)
	if err != nil {
		return err
	}
	if identity.TokenID == "" {
		return apperrors.Unauthorized("Token cannot be revoked")
	}

	until := time.Unix(identity.ExpireAt, 0)
	if err := s.revocations.Revoke(ctx, identity.TokenID, until); err != nil {
		s.cfg.Log.Error("Failed to revoke token",
			"id", identity.ID,
			"error", err,
		)
		return apperrors.Unavailable("Token revocation")
	}

	s.cfg.Log.Info("User logged out successfully", "id", identity.ID)
	return nil
}

func (s *accountService) Profile(ctx context.Context) (any, error) {
	identity, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if identity.IsBabysitter() {
		babysitter, err := s.repo.FindBabysitter(ctx, identity.ID)
		if err != nil {
			return nil, s.mapLookupError("Babysitter", identity.ID, err)
		}
		return babysitter, nil
	}

	parent, err := s.repo.FindParent(ctx, identity.ID)
	if err != nil {
		return nil, s.mapLookupError("Parent", identity.ID, err)
	}
	return parent, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, req *model.BabysitterUpdate) (any, error) {
	identity, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	normalizeProfile(&req.ProfileUpdate)

	if !identity.IsBabysitter() {
		if err := s.validator.ValidateParentUpdate(&req.ProfileUpdate); err != nil {
			return nil, apperrors.ValidationFields("Profile validation failed", err)
		}
		parent, err := s.repo.UpdateParent(ctx, identity.ID, &req.ProfileUpdate)
		if err != nil {
			return nil, s.mapLookupError("Parent", identity.ID, err)
		}
		s.cfg.Log.Info("Parent profile updated successfully", "id", identity.ID)
		return parent, nil
	}

	if req.Skills != nil {
		skills := sanitizer.NormalizeSkills(*req.Skills)
		req.Skills = &skills
	}
	if req.Languages != nil {
		languages := sanitizer.NormalizeLanguages(*req.Languages)
		req.Languages = &languages
	}
	if req.Bio != nil {
		bio := sanitizer.NormalizeText(*req.Bio)
		req.Bio = &bio
	}

	if err := s.validator.ValidateBabysitterUpdate(req); err != nil {
		return nil, apperrors.ValidationFields("Profile validation failed", err)
	}
	babysitter, err := s.repo.UpdateBabysitter(ctx, identity.ID, req)
	if err != nil {
		return nil, s.mapLookupError("Babysitter", identity.ID, err)
	}
	s.cfg.Log.Info("Babysitter profile updated successfully", "id", identity.ID)
	return babysitter, nil
}

func normalizeProfile(update *model.ProfileUpdate) {
	if update.Name != nil {
		name := sanitizer.NormalizeName(*update.Name)
		update.Name = &name
	}
	if update.Address != nil {
		address := sanitizer.NormalizeAddress(*update.Address)
		update.Address = &address
	}
	if update.Contact != nil {
		contact := normalizeOr(*update.Contact, sanitizer.NormalizePhone)
		update.Contact = &contact
	}
	if update.Photo != nil {
		photo := normalizeOr(*update.Photo, sanitizer.NormalizeURL)
		update.Photo = &photo
	}
}

// normalizeOr keeps the raw value when the normalizer rejects it, so the
// validator reports the field instead of a missing one.
func normalizeOr(value string, normalize func(string) string) string {
	if normalized := normalize(value); normalized != "" {
		return normalized
	}
	return value
}

func (s *accountService) mapLookupError(resource, id string, err error) error {
	if errors.Is(err, accountserrors.ErrNotFound) || errors.Is(err, accountserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID(resource, id)
	}
	s.cfg.Log.Error("Failed to access account",
		"resource", resource,
		"id", id,
		"error", err,
	)
	return apperrors.Internal("Failed to access account", err)
}

func caller(ctx context.Context) (auth.Identity, error) {
	identity, ok := auth.FromContext(ctx)
	if !ok || identity.ID == "" {
		return auth.Identity{}, apperrors.Unauthorized("Authentication required")
	}
	return identity, nil
}

func parentCaller(ctx context.Context) (auth.Identity, error) {
	identity, err := caller(ctx)
	if err != nil {
		return auth.Identity{}, err
	}
	if !identity.IsParent() {
		return auth.Identity{}, apperrors.Forbidden("Only parents can access this resource")
	}
	return identity, nil
}
