package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"recruitment-buddy/internal/domain"
	"recruitment-buddy/internal/email"
	"recruitment-buddy/internal/repository"
)

// UserService coordina registro, login y reseteo de contraseña.
type UserService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	emailSender email.Sender
	limiter     RateLimiter
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, emailSender email.Sender, limiter RateLimiter) *UserService {
	if limiter == nil {
		limiter = NewRateLimiter(resetCodeTTL, 5)
	}
	return &UserService{
		logger:      logger,
		users:       users,
		emailSender: emailSender,
		limiter:     limiter,
	}
}

type SignupInput struct {
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownEmail       = errors.New("unknown email")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrResetNotRequested  = errors.New("password reset not requested")
	ErrResetExpired       = errors.New("password reset code expired")
	ErrResetInvalid       = errors.New("password reset code invalid")
	ErrEmailSendFailure   = errors.New("email send failed")
	ErrRateLimited        = errors.New("rate limited")
	ErrInvalidEmail       = errors.New("invalid email")
	errServiceUnavailable = errors.New("user service not configured")
)

const resetCodeTTL = 10 * time.Minute

// Signup valida en orden y devuelve el primer fallo como *ValidationError,
// con el mensaje listo para mostrarse al usuario.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errServiceUnavailable
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	emailAddr := normalizeEmail(input.Email)

	switch {
	case firstName == "":
		return domain.User{}, &ValidationError{Field: "first_name", Message: "First name is required."}
	case lastName == "":
		return domain.User{}, &ValidationError{Field: "last_name", Message: "Last name is required."}
	case emailAddr == "":
		return domain.User{}, &ValidationError{Field: "email", Message: "Email is required."}
	case input.Password == "":
		return domain.User{}, &ValidationError{Field: "password", Message: "Password is required."}
	case input.Password != input.ConfirmPassword:
		return domain.User{}, &ValidationError{Field: "confirm_password", Message: "Passwords do not match."}
	}

	_, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return domain.User{}, emailTakenError(emailAddr)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashBytes),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Dos registros concurrentes con el mismo email: gana la restriccion UNIQUE.
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, emailTakenError(emailAddr)
		}
		return domain.User{}, err
	}

	if s.logger != nil {
		s.logger.Info("user registered", zap.String("user_id", user.ID))
	}
	return user, nil
}

func emailTakenError(emailAddr string) error {
	return fmt.Errorf("%w: %w", ErrEmailTaken, &ValidationError{
		Field:   "email",
		Message: fmt.Sprintf("Email %s is already registered.", emailAddr),
	})
}

// Authenticate distingue email desconocido de contraseña incorrecta.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errServiceUnavailable
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return domain.User{}, ErrUnknownEmail
	}
	if s.limiter != nil && !s.limiter.Allow("login:"+emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUnknownEmail
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" || password == "" {
		return domain.User{}, ErrIncorrectPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrIncorrectPassword
	}
	// Solo los fallos cuentan contra el limite.
	if s.limiter != nil {
		s.limiter.Reset("login:" + emailAddr)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errServiceUnavailable
	}
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

// RequestPasswordReset envia un codigo de 6 digitos. Un email desconocido no
// produce error para no revelar que cuentas existen.
func (s *UserService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	if s.users == nil {
		return errServiceUnavailable
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrInvalidEmail
	}
	if s.limiter != nil && !s.limiter.Allow("reset:"+emailAddr) {
		return ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	code, hash, expiresAt, err := generateResetCode()
	if err != nil {
		return err
	}
	if err := s.users.UpdateResetCode(ctx, user.ID, hash, expiresAt); err != nil {
		return err
	}

	if s.emailSender == nil {
		return ErrEmailSendFailure
	}
	if err := s.emailSender.SendPasswordReset(ctx, emailAddr, code, expiresAt); err != nil {
		if s.logger != nil {
			s.logger.Warn("send password reset failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return ErrEmailSendFailure
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, emailAddr, code, newPassword, confirmPassword string) error {
	if s.users == nil {
		return errServiceUnavailable
	}

	emailAddr = normalizeEmail(emailAddr)
	code = strings.TrimSpace(code)
	if emailAddr == "" {
		return ErrInvalidEmail
	}
	if newPassword == "" {
		return &ValidationError{Field: "password", Message: "Password is required."}
	}
	if newPassword != confirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "Passwords do not match."}
	}
	if !isValidResetCode(code) {
		return ErrResetInvalid
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrResetNotRequested
		}
		return err
	}
	if user.ResetCodeHash == "" || user.ResetExpiresAt == nil {
		return ErrResetNotRequested
	}
	if time.Now().UTC().After(*user.ResetExpiresAt) {
		return ErrResetExpired
	}
	if !verifyResetCode(code, user.ResetCodeHash) {
		return ErrResetInvalid
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hashBytes)); err != nil {
		return err
	}
	return s.users.ClearResetCode(ctx, user.ID)
}

func generateResetCode() (string, string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", "", time.Time{}, err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", "", time.Time{}, err
	}
	saltStr := base64.StdEncoding.EncodeToString(salt)
	hashBytes := sha256.Sum256([]byte(saltStr + ":" + code))
	hash := base64.StdEncoding.EncodeToString(hashBytes[:])

	expiresAt := time.Now().UTC().Add(resetCodeTTL)
	return code, saltStr + ":" + hash, expiresAt, nil
}

func verifyResetCode(code, stored string) bool {
	saltStr, expectedHash, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}
	hashBytes := sha256.Sum256([]byte(saltStr + ":" + code))
	hash := base64.StdEncoding.EncodeToString(hashBytes[:])
	return subtle.ConstantTimeCompare([]byte(hash), []byte(expectedHash)) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidResetCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
