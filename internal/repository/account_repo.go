package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SaiHarsha9992/Email-Verfication-App/internal/model"
)

// ErrNotFound is returned when no account matches the lookup.
var ErrNotFound = errors.New("account not found")

// DB is the slice of pgxpool.Pool the repository needs. pgxmock
// implements it too, which is how the queries are tested.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, account_id, name, email, password_hash, is_verified, verification_token, token_expiry, created_at`

// Create inserts a new account and fills in the store-assigned row id.
func (r *AccountRepository) Create(ctx context.Context, acc *model.Account) error {
	query := `INSERT INTO accounts (account_id, name, email, password_hash, is_verified, verification_token, token_expiry, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		acc.AccountID, acc.Name, acc.Email, acc.PasswordHash,
		acc.IsVerified, acc.VerificationToken, acc.TokenExpiry, acc.CreatedAt,
	).Scan(&acc.ID)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email=$1`
	return r.scanAccount(r.db.QueryRow(ctx, query, email))
}

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id=$1`
	return r.scanAccount(r.db.QueryRow(ctx, query, accountID))
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email=$1)`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ConsumeVerificationToken flips the account to verified and clears the
// token pair, in one statement, only while the stored token matches the
// presented one and has not passed its stored expiry. At most one of two
// concurrent calls can see a row affected; the loser observes false.
func (r *AccountRepository) ConsumeVerificationToken(ctx context.Context, email, token string, now time.Time) (bool, error) {
	query := `UPDATE accounts
		SET is_verified=TRUE, verification_token=NULL, token_expiry=NULL
		WHERE email=$1 AND verification_token=$2 AND token_expiry > $3`
	tag, err := r.db.Exec(ctx, query, email, token, now)
	if err != nil {
		return false, fmt.Errorf("consume verification token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RotateVerificationToken overwrites the stored token pair, invalidating
// whatever token was outstanding before.
func (r *AccountRepository) RotateVerificationToken(ctx context.Context, email, token string, expiry time.Time) error {
	query := `UPDATE accounts SET verification_token=$2, token_expiry=$3 WHERE email=$1`
	tag, err := r.db.Exec(ctx, query, email, token, expiry)
	if err != nil {
		return fmt.Errorf("rotate verification token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*model.Account, error) {
	var acc model.Account
	err := row.Scan(&acc.ID, &acc.AccountID, &acc.Name, &acc.Email, &acc.PasswordHash,
		&acc.IsVerified, &acc.VerificationToken, &acc.TokenExpiry, &acc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &acc, nil
}
