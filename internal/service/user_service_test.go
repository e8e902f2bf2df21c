package service_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/model"
	"github.com/unclebandit/mailflow-backend/internal/service"
	"github.com/unclebandit/mailflow-backend/internal/token"
)

type MockUserRepo struct {
	users  map[int]*model.User
	nextID int
}

func newMockUserRepo() *MockUserRepo {
	return &MockUserRepo{users: map[int]*model.User{}, nextID: 1}
}

func (m *MockUserRepo) Create(u *model.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return appErrors.NewEmailTaken(u.Email)
		}
	}
	u.ID = m.nextID
	m.nextID++
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *MockUserRepo) GetByID(id int) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, appErrors.NewUserNotFound(id)
	}
	copied := *u
	return &copied, nil
}

func (m *MockUserRepo) GetByEmail(email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, appErrors.NewUserNotFoundByEmail(email)
}

func (m *MockUserRepo) UpdateProfile(u *model.User) error {
	stored, ok := m.users[u.ID]
	if !ok {
		return appErrors.NewUserNotFound(u.ID)
	}
	stored.Username = u.Username
	stored.Phone = u.Phone
	stored.Avatar = u.Avatar
	stored.Country = u.Country
	return nil
}

func (m *MockUserRepo) UpdatePassword(id int, passwordHash string) error {
	stored, ok := m.users[id]
	if !ok {
		return appErrors.NewUserNotFound(id)
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (m *MockUserRepo) SetActive(id int, active bool) error {
	stored, ok := m.users[id]
	if !ok {
		return appErrors.NewUserNotFound(id)
	}
	stored.IsActive = active
	return nil
}

func (m *MockUserRepo) SetBlocked(id int, blocked bool) error {
	stored, ok := m.users[id]
	if !ok {
		return appErrors.NewUserNotFound(id)
	}
	stored.IsBlocked = blocked
	return nil
}

func (m *MockUserRepo) ListNonManagers() ([]model.User, error) {
	users := []model.User{}
	for id := 1; id < m.nextID; id++ {
		if u, ok := m.users[id]; ok && u.Role != model.RoleManager {
			users = append(users, *u)
		}
	}
	return users, nil
}

type capturedEmail struct {
	subject string
	body    string
	to      string
}

// CaptureTransport records outgoing mail instead of sending it.
type CaptureTransport struct {
	emails []capturedEmail
	fail   error
}

func (t *CaptureTransport) Send(subject, body, fromAddress string, to []string) error {
	if t.fail != nil {
		return t.fail
	}
	t.emails = append(t.emails, capturedEmail{subject: subject, body: body, to: to[0]})
	return nil
}

func newUserFixture() (*service.UserService, *MockUserRepo, *CaptureTransport) {
	repo := newMockUserRepo()
	transport := &CaptureTransport{}
	svc := &service.UserService{
		UserRepo:    repo,
		Tokens:      token.NewManager("test-secret", "mailflow", time.Hour, time.Hour),
		Transport:   transport,
		FromAddress: "noreply@mailflow.local",
		BaseURL:     "http://localhost:8080",
	}
	return svc, repo, transport
}

// lastLinkToken pulls the token out of an emailed link, which always ends
// with /<token> on its own line.
func lastLinkToken(t *testing.T, body string) string {
	t.Helper()
	trimmed := strings.TrimSpace(body)
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		t.Fatalf("no link found in email body: %q", body)
	}
	return trimmed[idx+1:]
}

func TestRegisterActivateLogin(t *testing.T) {
	svc, repo, transport := newUserFixture()

	user, err := svc.Register("Alice@Example.COM", "password123", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.IsActive {
		t.Error("expected new account to be inactive")
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected role user, got %s", user.Role)
	}

	// Login before activation is refused.
	if _, _, err := svc.Login("alice@example.com", "password123"); !errors.Is(err, appErrors.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive before activation, got %v", err)
	}

	if len(transport.emails) != 1 {
		t.Fatalf("expected one activation email, got %d", len(transport.emails))
	}
	activationToken := lastLinkToken(t, transport.emails[0].body)

	if err := svc.Activate(activationToken); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if !repo.users[user.ID].IsActive {
		t.Error("expected account active after activation")
	}

	sessionToken, loggedIn, err := svc.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sessionToken == "" {
		t.Error("expected a session token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, loggedIn.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, err := svc.Register("not-an-email", "password123", ""); !errors.Is(err, appErrors.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register("short@example.com", "short", ""); !errors.Is(err, appErrors.ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, err := svc.Register("alice@example.com", "password123", "Alice"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register("alice@example.com", "password123", "Alice Two")
	var taken *appErrors.ErrEmailTaken
	if !errors.As(err, &taken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterSurvivesEmailFailure(t *testing.T) {
	svc, repo, transport := newUserFixture()
	transport.fail = errors.New("smtp down")

	user, err := svc.Register("alice@example.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("register should not fail on email errors, got %v", err)
	}
	if _, ok := repo.users[user.ID]; !ok {
		t.Error("expected account to exist despite the email failure")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, _ := newUserFixture()

	user, _ := svc.Register("alice@example.com", "password123", "Alice")
	repo.users[user.ID].IsActive = true

	if _, _, err := svc.Login("alice@example.com", "wrong-password"); !errors.Is(err, appErrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, _, err := svc.Login("nobody@example.com", "password123"); !errors.Is(err, appErrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginBlockedUser(t *testing.T) {
	svc, repo, _ := newUserFixture()

	user, _ := svc.Register("alice@example.com", "password123", "Alice")
	repo.users[user.ID].IsActive = true
	repo.users[user.ID].IsBlocked = true

	if _, _, err := svc.Login("alice@example.com", "password123"); !errors.Is(err, appErrors.ErrUserBlocked) {
		t.Errorf("expected ErrUserBlocked, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, repo, transport := newUserFixture()

	user, _ := svc.Register("alice@example.com", "password123", "Alice")
	repo.users[user.ID].IsActive = true
	transport.emails = nil

	if err := svc.RequestPasswordReset("alice@example.com"); err != nil {
		t.Fatalf("reset request failed: %v", err)
	}
	if len(transport.emails) != 1 {
		t.Fatalf("expected one reset email, got %d", len(transport.emails))
	}
	resetToken := lastLinkToken(t, transport.emails[0].body)

	if err := svc.ConfirmPasswordReset(resetToken, "new-password-456"); err != nil {
		t.Fatalf("reset confirm failed: %v", err)
	}

	if _, _, err := svc.Login("alice@example.com", "password123"); !errors.Is(err, appErrors.ErrInvalidCredentials) {
		t.Error("expected old password to stop working")
	}
	if _, _, err := svc.Login("alice@example.com", "new-password-456"); err != nil {
		t.Errorf("expected new password to work, got %v", err)
	}
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	svc, _, transport := newUserFixture()

	if err := svc.RequestPasswordReset("nobody@example.com"); err != nil {
		t.Errorf("expected nil for unknown email, got %v", err)
	}
	if len(transport.emails) != 0 {
		t.Errorf("expected no email for unknown address, got %d", len(transport.emails))
	}
}

func TestActivationTokenIsNotASession(t *testing.T) {
	svc, _, transport := newUserFixture()

	if _, err := svc.Register("alice@example.com", "password123", "Alice"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	activationToken := lastLinkToken(t, transport.emails[0].body)

	// A reset confirmation with an activation token must be refused.
	if err := svc.ConfirmPasswordReset(activationToken, "new-password-456"); !errors.Is(err, appErrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for purpose mismatch, got %v", err)
	}
}

func TestListUsersSkipsManagers(t *testing.T) {
	svc, repo, _ := newUserFixture()

	svc.Register("alice@example.com", "password123", "Alice")
	manager, _ := svc.Register("boss@example.com", "password123", "Boss")
	repo.users[manager.ID].Role = model.RoleManager

	users, err := svc.ListUsers()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 non-manager user, got %d", len(users))
	}
	if users[0].Email != "alice@example.com" {
		t.Errorf("unexpected user listed: %s", users[0].Email)
	}
}

func TestSetBlockedUnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture()

	err := svc.SetBlocked(404, true)
	var notFound *appErrors.ErrUserNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
