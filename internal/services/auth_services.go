package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SaiHarsha9992/Email-Verfication-App/internal/model"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/repository"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/token"
)

const (
	MinPasswordLen = 8
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Business-rule failures, mapped to status codes by the handlers.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("user already verified")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailDelivery      = errors.New("verification email failed to send")
)

// AccountStore is the Record Store the service talks to.
// *repository.AccountRepository implements it.
type AccountStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, acc *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByAccountID(ctx context.Context, accountID string) (*model.Account, error)
	ConsumeVerificationToken(ctx context.Context, email, token string, now time.Time) (bool, error)
	RotateVerificationToken(ctx context.Context, email, token string, expiry time.Time) error
}

type AuthService struct {
	Accounts  AccountStore
	Validator EmailValidator
	Mailer    EmailSender
	Tokens    *token.Manager

	baseURL string
}

func NewAuthService(accounts AccountStore, validator EmailValidator, mailer EmailSender, tokens *token.Manager, baseURL string) *AuthService {
	return &AuthService{
		Accounts:  accounts,
		Validator: validator,
		Mailer:    mailer,
		Tokens:    tokens,
		baseURL:   baseURL,
	}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLen)
	}
	return nil
}

// Signup creates an unverified account and emails a verification link.
// A dispatch failure leaves the account persisted in its pending state;
// the user recovers via ResendVerification.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.validateEmail(email); err != nil {
		return err
	}
	if err := s.validatePassword(password); err != nil {
		return err
	}
	if err := s.Validator.Validate(ctx, email); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.Accounts.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	signed, expiry, err := s.Tokens.NewVerificationToken(email)
	if err != nil {
		return err
	}

	acc := &model.Account{
		AccountID:         uuid.NewString(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		IsVerified:        false,
		VerificationToken: &signed,
		TokenExpiry:       &expiry,
		CreatedAt:         time.Now(),
	}
	if err := s.Accounts.Create(ctx, acc); err != nil {
		return err
	}

	if err := s.sendVerificationLink(ctx, email, signed, "Verify your Email"); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	return nil
}

// VerifyEmail consumes a verification token. The signed claim and the
// stored token are checked independently: a token that still carries a
// valid signature is rejected once a newer one has been issued, and the
// stored expiry is authoritative over the claim's own expiry.
func (s *AuthService) VerifyEmail(ctx context.Context, raw string) error {
	claims, err := s.Tokens.ParseVerificationToken(raw)
	if err != nil {
		return ErrInvalidToken
	}

	consumed, err := s.Accounts.ConsumeVerificationToken(ctx, claims.Email, raw, time.Now())
	if err != nil {
		return err
	}
	if consumed {
		return nil
	}

	// The atomic consume did not match. Distinguish a stale token from
	// an expired one for the caller.
	acc, err := s.Accounts.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if acc.VerificationToken == nil || *acc.VerificationToken != raw {
		return ErrInvalidToken
	}
	if acc.TokenExpiry != nil && !acc.TokenExpiry.After(time.Now()) {
		return ErrTokenExpired
	}
	// Token matched and had time left, so a concurrent call consumed it
	// between the UPDATE and the re-read.
	return ErrInvalidToken
}

// ResendVerification rotates the stored token pair and emails a fresh
// link. The previous token stops verifying because the store-side
// equality check in VerifyEmail no longer matches it.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	acc, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if acc.IsVerified {
		return ErrAlreadyVerified
	}

	signed, expiry, err := s.Tokens.NewVerificationToken(email)
	if err != nil {
		return err
	}
	if err := s.Accounts.RotateVerificationToken(ctx, email, signed, expiry); err != nil {
		return err
	}

	if err := s.sendVerificationLink(ctx, email, signed, "Resend Verification Link"); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	return nil
}

// Login authenticates email + password and mints a session token.
// Returns the account (password hash zeroed) and the signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Account, string, error) {
	acc, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if !acc.IsVerified {
		return nil, "", ErrEmailNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	sessionToken, err := s.Tokens.NewSessionToken(acc.AccountID, acc.Email)
	if err != nil {
		return nil, "", err
	}

	// zero out password before returning
	acc.PasswordHash = ""
	return acc, sessionToken, nil
}

// GetProfile returns the account behind a validated session token.
func (s *AuthService) GetProfile(ctx context.Context, accountID string) (*model.Account, error) {
	acc, err := s.Accounts.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	acc.PasswordHash = ""
	return acc, nil
}

func (s *AuthService) sendVerificationLink(ctx context.Context, email, signed, subject string) error {
	link := s.baseURL + "/api/auth/verify/" + signed
	html := `<a href="` + link + `">Click here to verify your email</a>`
	return s.Mailer.Send(ctx, email, subject, html)
}
