package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"recruitment-buddy/internal/domain"
	"recruitment-buddy/internal/repository"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	createErr    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.usersByEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := m.usersByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	m.usersByID[id] = user
	return nil
}

func (m *mockUserRepo) UpdateResetCode(_ context.Context, id, codeHash string, expiresAt time.Time) error {
	user, ok := m.usersByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.ResetCodeHash = codeHash
	user.ResetExpiresAt = &expiresAt
	m.usersByID[id] = user
	return nil
}

func (m *mockUserRepo) ClearResetCode(_ context.Context, id string) error {
	user, ok := m.usersByID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.ResetCodeHash = ""
	user.ResetExpiresAt = nil
	m.usersByID[id] = user
	return nil
}

type mockEmailSender struct {
	lastTo      string
	lastCode    string
	lastExpires time.Time
	calls       int
	err         error
}

func (m *mockEmailSender) SendPasswordReset(_ context.Context, toEmail string, code string, expiresAt time.Time) error {
	m.calls++
	m.lastTo = toEmail
	m.lastCode = code
	m.lastExpires = expiresAt
	return m.err
}

type mockLimiter struct {
	allow bool
	keys  []string
	reset []string
}

func (m *mockLimiter) Allow(key string) bool {
	m.keys = append(m.keys, key)
	return m.allow
}

func (m *mockLimiter) Reset(key string) {
	m.reset = append(m.reset, key)
}

func validSignup() SignupInput {
	return SignupInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           " Ada@Example.com ",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestUserServiceSignup_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, &mockEmailSender{}, nil)

	user, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.PasswordHash == "secret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("expected stored hash to match password: %v", err)
	}
	if _, err := repo.GetByEmail(context.Background(), "ada@example.com"); err != nil {
		t.Fatalf("expected user stored, got %v", err)
	}
}

func TestUserServiceSignup_ValidationOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SignupInput)
		want   string
	}{
		{"all missing", func(in *SignupInput) { *in = SignupInput{} }, "First name is required."},
		{"last name", func(in *SignupInput) { in.LastName = " " }, "Last name is required."},
		{"email", func(in *SignupInput) { in.Email = "" }, "Email is required."},
		{"password", func(in *SignupInput) { in.Password = ""; in.ConfirmPassword = "" }, "Password is required."},
		{"mismatch", func(in *SignupInput) { in.ConfirmPassword = "other" }, "Passwords do not match."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewUserService(zap.NewNop(), newMockUserRepo(), &mockEmailSender{}, nil)
			input := validSignup()
			tc.mutate(&input)

			_, err := svc.Signup(context.Background(), input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, verr.Message)
			}
		})
	}
}

func TestUserServiceSignup_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, &mockEmailSender{}, nil)

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err := svc.Signup(context.Background(), validSignup())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != "Email ada@example.com is already registered." {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestUserServiceSignup_UniqueViolationOnCreate(t *testing.T) {
	repo := newMockUserRepo()
	repo.createErr = repository.ErrDuplicate
	svc := NewUserService(zap.NewNop(), repo, &mockEmailSender{}, nil)

	_, err := svc.Signup(context.Background(), validSignup())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, &mockEmailSender{}, nil)
	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "secret"); !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	user, err := svc.Authenticate(context.Background(), "ADA@example.com", "secret")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if user.FirstName != "Ada" {
		t.Fatalf("expected Ada, got %s", user.FirstName)
	}
}

func TestUserServiceAuthenticate_RateLimited(t *testing.T) {
	limiter := &mockLimiter{allow: false}
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), &mockEmailSender{}, limiter)

	_, err := svc.Authenticate(context.Background(), "ada@example.com", "secret")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "login:ada@example.com" {
		t.Fatalf("unexpected limiter keys %v", limiter.keys)
	}
}

func TestUserServiceAuthenticate_SuccessDoesNotLockAccount(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, &mockEmailSender{}, NewRateLimiter(10*time.Minute, 2))
	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := svc.Authenticate(context.Background(), "ada@example.com", "secret"); err != nil {
			t.Fatalf("login %d: expected success, got %v", i+1, err)
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, ErrIncorrectPassword) {
			t.Fatalf("expected ErrIncorrectPassword, got %v", err)
		}
	}
	if _, err := svc.Authenticate(context.Background(), "ada@example.com", "secret"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited after failures, got %v", err)
	}
}

func TestUserServiceAuthenticate_ResetsLimiterOnSuccess(t *testing.T) {
	repo := newMockUserRepo()
	limiter := &mockLimiter{allow: true}
	svc := NewUserService(zap.NewNop(), repo, &mockEmailSender{}, limiter)
	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	if len(limiter.reset) != 0 {
		t.Fatalf("failed login must not reset limiter, got %v", limiter.reset)
	}
	if _, err := svc.Authenticate(context.Background(), "ada@example.com", "secret"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(limiter.reset) != 1 || limiter.reset[0] != "login:ada@example.com" {
		t.Fatalf("unexpected reset keys %v", limiter.reset)
	}
}

func TestUserServicePasswordReset_Flow(t *testing.T) {
	repo := newMockUserRepo()
	sender := &mockEmailSender{}
	svc := NewUserService(zap.NewNop(), repo, sender, nil)
	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	start := time.Now().UTC()
	if err := svc.RequestPasswordReset(context.Background(), "ada@example.com"); err != nil {
		t.Fatalf("expected request success, got %v", err)
	}
	if sender.lastTo != "ada@example.com" || len(sender.lastCode) != 6 {
		t.Fatalf("expected 6 digit code sent to ada, got %q to %q", sender.lastCode, sender.lastTo)
	}
	if sender.lastExpires.Before(start.Add(9*time.Minute)) || sender.lastExpires.After(start.Add(11*time.Minute)) {
		t.Fatalf("expected expiry around 10 minutes, got %v", sender.lastExpires)
	}

	if err := svc.ResetPassword(context.Background(), "ada@example.com", sender.lastCode, "newpass", "newpass"); err != nil {
		t.Fatalf("expected reset success, got %v", err)
	}
	stored, _ := repo.GetByEmail(context.Background(), "ada@example.com")
	if stored.ResetCodeHash != "" || stored.ResetExpiresAt != nil {
		t.Fatalf("expected reset code cleared")
	}
	if _, err := svc.Authenticate(context.Background(), "ada@example.com", "newpass"); err != nil {
		t.Fatalf("expected login with new password, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "ada@example.com", sender.lastCode, "x", "x"); !errors.Is(err, ErrResetNotRequested) {
		t.Fatalf("expected code to be single use, got %v", err)
	}
}

func TestUserServiceRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	sender := &mockEmailSender{}
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), sender, nil)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no email sent")
	}
}

func TestUserServiceRequestPasswordReset_EmailSendFailure(t *testing.T) {
	repo := newMockUserRepo()
	sender := &mockEmailSender{err: errors.New("smtp down")}
	svc := NewUserService(zap.NewNop(), repo, sender, nil)
	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	err := svc.RequestPasswordReset(context.Background(), "ada@example.com")
	if !errors.Is(err, ErrEmailSendFailure) {
		t.Fatalf("expected ErrEmailSendFailure, got %v", err)
	}
}

func TestUserServiceRequestPasswordReset_RateLimited(t *testing.T) {
	limiter := &mockLimiter{allow: false}
	svc := NewUserService(zap.NewNop(), newMockUserRepo(), &mockEmailSender{}, limiter)

	err := svc.RequestPasswordReset(context.Background(), "ada@example.com")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if limiter.keys[0] != "reset:ada@example.com" {
		t.Fatalf("unexpected limiter key %s", limiter.keys[0])
	}
}

func TestUserServiceResetPassword_Expired(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo, &mockEmailSender{}, nil)

	code, hash, _, err := generateResetCode()
	if err != nil {
		t.Fatalf("generate code failed: %v", err)
	}
	expiredAt := time.Now().UTC().Add(-time.Minute)
	user := domain.User{
		ID:             "u1",
		Email:          "ada@example.com",
		ResetCodeHash:  hash,
		ResetExpiresAt: &expiredAt,
		CreatedAt:      time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	err = svc.ResetPassword(context.Background(), "ada@example.com", code, "p", "p")
	if !errors.Is(err, ErrResetExpired) {
		t.Fatalf("expected ErrResetExpired, got %v", err)
	}
}

func TestUserServiceResetPassword_WrongCode(t *testing.T) {
	repo := newMockUserRepo()
	sender := &mockEmailSender{}
	svc := NewUserService(zap.NewNop(), repo, sender, nil)
	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := svc.RequestPasswordReset(context.Background(), "ada@example.com"); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	wrong := "000000"
	if sender.lastCode == wrong {
		wrong = "111111"
	}
	if err := svc.ResetPassword(context.Background(), "ada@example.com", wrong, "p", "p"); !errors.Is(err, ErrResetInvalid) {
		t.Fatalf("expected ErrResetInvalid, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "ada@example.com", "12ab", "p", "p"); !errors.Is(err, ErrResetInvalid) {
		t.Fatalf("expected ErrResetInvalid for malformed code, got %v", err)
	}
}

func TestVerifyResetCode(t *testing.T) {
	code, hash, _, err := generateResetCode()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !verifyResetCode(code, hash) {
		t.Fatalf("expected code to verify")
	}
	if verifyResetCode(code, "nocolon") {
		t.Fatalf("expected malformed hash to fail")
	}
}
