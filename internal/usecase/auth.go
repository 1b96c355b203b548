package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/email"
	"github.com/habitflow-dev/habitflow/internal/metrics"
	"github.com/habitflow-dev/habitflow/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const defaultJWTTTL = 24 * time.Hour

type AuthUsecase struct {
	users  repository.UserRepository
	email  email.Sender
	logger *slog.Logger
	jwtKey []byte
	jwtTTL time.Duration
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, logger *slog.Logger, jwtKey []byte, jwtTTL time.Duration) *AuthUsecase {
	if jwtTTL <= 0 {
		jwtTTL = defaultJWTTTL
	}
	return &AuthUsecase{
		users:  users,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
		jwtKey: jwtKey,
		jwtTTL: jwtTTL,
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignUp registers a new user with a bcrypt-hashed password and sends a
// welcome email. The email is best-effort: a delivery failure never fails
// the signup.
func (u *AuthUsecase) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	addr := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        addr,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.SignupsTotal.Inc()

	subject := "Welcome to habitflow"
	body := fmt.Sprintf("<p>Hi %s, your account is ready. Create your first habit and start checking in.</p>", user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.Warn("welcome email", "error", err)
	}

	return user, nil
}

// SignIn verifies the credentials and returns a signed bearer token.
// Unknown email and wrong password are deliberately the same error.
func (u *AuthUsecase) SignIn(ctx context.Context, emailAddr, password string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := u.users.FindByEmail(ctx, addr)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.jwtTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
