package auth

import (
	"context"
	"testing"

	"flamingo/internal/domain"
	"flamingo/internal/repository"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	store  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{store: map[int64]*domain.User{}, nextID: 1}
}

func (m *stubUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range m.store {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = m.nextID
	m.nextID++
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *stubUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *stubUserRepo) ExistsByEmailExcluding(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range m.store {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *stubUserRepo) Update(ctx context.Context, u *domain.User) error {
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *stubUserRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.store[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *stubUserRepo) Delete(ctx context.Context, id int64) error {
	delete(m.store, id)
	return nil
}

type stubTokenIssuer struct{}

func (stubTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	return "token-for-test", nil
}

func seedUser(repo *stubUserRepo, email, password string, role domain.UserRole, approved bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &domain.User{Email: email, PasswordHash: string(hash), Role: role, IsApproved: approved}
	_ = repo.Create(context.Background(), u)
	return u
}

func adminUser() domain.Principal { return domain.Principal{ID: 1, Role: domain.RoleAdmin} }

func TestLogin_Succeeds(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "agency@example.com", "s3cret-pass", domain.RoleAgency, true)
	svc := NewService(repo, stubTokenIssuer{})

	out, err := svc.Login(context.Background(), LoginRequest{Email: "Agency@Example.com ", Password: "s3cret-pass"})
	assert.NoError(t, err)
	assert.Equal(t, "token-for-test", out.Token)
	assert.Equal(t, "agency@example.com", out.User.Email)
}

func TestLogin_WrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "agency@example.com", "s3cret-pass", domain.RoleAgency, true)
	svc := NewService(repo, stubTokenIssuer{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "agency@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnapprovedAgencyBlocked(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "new@example.com", "s3cret-pass", domain.RoleAgency, false)
	svc := NewService(repo, stubTokenIssuer{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "new@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestRegister_CreatesLockedAgency(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, stubTokenIssuer{})

	u, err := svc.Register(context.Background(), RegisterRequest{Email: "new@example.com", Password: "s3cret-pass", Name: "Voyages Nord"})
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAgency, u.Role)
	assert.False(t, u.IsApproved)
	assert.False(t, u.IsProfileComplete)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "new@example.com", Password: "other-pass", Name: "Dup"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestApprove_UnlocksLogin(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "admin@example.com", "admin-pass", domain.RoleAdmin, true)
	seedUser(repo, "new@example.com", "s3cret-pass", domain.RoleAgency, false)
	svc := NewService(repo, stubTokenIssuer{})

	u, err := svc.Approve(context.Background(), adminUser(), 2)
	assert.NoError(t, err)
	assert.True(t, u.IsApproved)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "new@example.com", Password: "s3cret-pass"})
	assert.NoError(t, err)
}

func TestUpdateProfile_MarksComplete(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(repo, "agency@example.com", "s3cret-pass", domain.RoleAgency, true)
	svc := NewService(repo, stubTokenIssuer{})

	out, err := svc.UpdateProfile(context.Background(), domain.Principal{ID: u.ID, Role: domain.RoleAgency}, UpdateProfileRequest{
		AgencyName: "Voyages Nord",
		Address:    "12 rue des Lilas, Oran",
		RC:         "RC-445-221",
		Phone:      "+213 555 20 30 40",
	})
	assert.NoError(t, err)
	assert.True(t, out.IsProfileComplete)
	assert.Equal(t, "Voyages Nord", out.AgencyName)
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "admin@example.com", "admin-pass", domain.RoleAdmin, true)
	svc := NewService(repo, stubTokenIssuer{})

	err := svc.DeleteUser(context.Background(), adminUser(), 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdminOperations_AgencyForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewService(repo, stubTokenIssuer{})
	agency := domain.Principal{ID: 5, Role: domain.RoleAgency}

	_, err := svc.ListUsers(context.Background(), agency)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateUser(context.Background(), agency, CreateUserRequest{Email: "x@example.com", Password: "longenough", Name: "X", Role: "agency"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Approve(context.Background(), agency, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}
