package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"flamingo/internal/domain"
	"flamingo/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users  UserRepository
	tokens TokenIssuer
}

func NewService(users UserRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies credentials and issues a signed token. Agencies that
// have not been approved yet cannot log in; admins always can.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Role == domain.RoleAgency && !u.IsApproved {
		return nil, ErrNotApproved
	}

	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: u}, nil
}

// Register creates an agency account that stays locked until an admin
// approves it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &domain.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleAgency,
		Name:         req.Name,
		IsApproved:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// CreateUser is the admin-side account creation; the account is usable
// right away.
func (s *Service) CreateUser(ctx context.Context, p domain.Principal, req CreateUserRequest) (*domain.User, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &domain.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         domain.UserRole(req.Role),
		Name:         req.Name,
		IsApproved:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.getByID(ctx, p.ID)
}

// UpdateProfile fills in the agency's legal identity. Once every required
// field is present the profile is flagged complete.
func (s *Service) UpdateProfile(ctx context.Context, p domain.Principal, req UpdateProfileRequest) (*domain.User, error) {
	if !p.IsAgency() {
		return nil, ErrForbidden
	}
	u, err := s.getByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	u.AgencyName = req.AgencyName
	u.Address = req.Address
	u.RC = req.RC
	u.Phone = req.Phone
	u.IsProfileComplete = true
	u.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context, p domain.Principal) ([]domain.User, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *Service) Approve(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	u, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsApproved = true
	u.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, p domain.Principal, id int64) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if id == p.ID {
		return ErrValidation
	}
	if _, err := s.getByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
