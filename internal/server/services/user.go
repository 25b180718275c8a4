package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/evote-app/evote-backend/internal/common"
	"github.com/evote-app/evote-backend/internal/logging"
	"github.com/evote-app/evote-backend/internal/server/auth"
	"github.com/evote-app/evote-backend/internal/server/config"
	"github.com/evote-app/evote-backend/internal/server/mail"
	"github.com/evote-app/evote-backend/internal/server/models"
	"github.com/evote-app/evote-backend/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// UserService handles the passwordless account lifecycle: registration with
// email verification, one-time login credentials, and session token minting.
type UserService struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	mailer    mail.Mailer
	jwtSecret []byte
	validity  time.Duration
	logger    logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Mailer, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:        db,
		repos:     m,
		mailer:    mailer,
		jwtSecret: []byte(cfg.SecretKey),
		validity:  cfg.TokenValidityDuration,
		logger:    logger.With("module", "users"),
	}
}

// Register creates an unverified account and dispatches the email
// verification code.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email string) (*models.User, error) {
	if firstName == "" || lastName == "" || email == "" {
		return nil, fmt.Errorf("%w: all fields must be filled out", common.ErrValidation)
	}
	if !nameRe.MatchString(firstName) || !nameRe.MatchString(lastName) {
		return nil, fmt.Errorf("%w: names must only contain alphabetical characters", common.ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}

	if _, err := s.repos.Users(s.db).GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	code := auth.NewShortCode(auth.VerificationCodeLength)
	now := time.Now()
	user := &models.User{
		ID:                    uuid.NewString(),
		FirstName:             firstName,
		LastName:              lastName,
		Email:                 email,
		Role:                  models.RoleUser,
		EmailVerified:         false,
		EmailVerificationCode: code,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.repos.Users(s.db).Create(ctx, user); err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"Welcome, %s %s!\n\nTo complete your registration, enter the following verification code in the app:\n\nVerification Code: %s\n\nIf you did not request this code, please ignore this email.\n",
		firstName, lastName, code)
	if err := s.mailer.Send(ctx, email, "Email Verification Code", body); err != nil {
		s.logger.Error(ctx, "failed to dispatch verification code", "error", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// VerifyEmail confirms the code sent at registration.
func (s *UserService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !auth.EqualCode(user.EmailVerificationCode, code) {
		return common.ErrInvalidCode
	}
	return s.repos.Users(s.db).MarkEmailVerified(ctx, email)
}

// RequestLogin issues a fresh one-time credential for a verified account and
// dispatches it by email. Only the derived verifier is stored.
func (s *UserService) RequestLogin(ctx context.Context, email string) error {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !user.EmailVerified {
		return common.ErrEmailNotVerified
	}

	loginID := auth.NewShortCode(auth.LoginIDLength)
	password := auth.NewShortCode(auth.LoginPasswordLength)

	salt, err := auth.NewSalt()
	if err != nil {
		return err
	}
	verifier := auth.DeriveLoginVerifier(password, salt)

	if err := s.repos.Users(s.db).SetLoginCredential(ctx, email, loginID, salt, verifier); err != nil {
		return err
	}

	body := fmt.Sprintf("Your login ID is:\n\n%s\n\nand your password is:\n\n%s\n", loginID, password)
	if err := s.mailer.Send(ctx, email, "Login ID and Password", body); err != nil {
		s.logger.Error(ctx, "failed to dispatch login credential", "error", err)
	}
	return nil
}

// ValidateLogin checks a one-time credential, clears it, and mints a session
// token carrying the email claim.
func (s *UserService) ValidateLogin(ctx context.Context, email, loginID, password string) (string, *models.User, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if !auth.CheckLoginCredential(user.LoginID, user.LoginVerifier, user.LoginSalt, loginID, password) {
		return "", nil, common.ErrInvalidLogin
	}

	if err := s.repos.Users(s.db).ClearLoginCredential(ctx, email); err != nil {
		return "", nil, err
	}

	token, err := auth.GenerateToken(email, s.jwtSecret, s.validity)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info(ctx, "login validated", "user_id", user.ID)
	return token, user, nil
}

// Get returns the account for the given email.
func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	return s.repos.Users(s.db).GetByEmail(ctx, email)
}
