package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiHarsha9992/Email-Verfication-App/internal/model"
	"github.com/SaiHarsha9992/Email-Verfication-App/internal/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func accountRows(acc *model.Account) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "account_id", "name", "email", "password_hash",
		"is_verified", "verification_token", "token_expiry", "created_at",
	}).AddRow(
		acc.ID, acc.AccountID, acc.Name, acc.Email, acc.PasswordHash,
		acc.IsVerified, acc.VerificationToken, acc.TokenExpiry, acc.CreatedAt,
	)
}

func TestAccountRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewAccountRepository(mock)

	tok := "signed-token"
	expiry := time.Now().Add(15 * time.Minute)
	acc := &model.Account{
		AccountID:         "8e2b9c2e-9a4f-4a7e-bf7e-1c2d3e4f5a6b",
		Name:              "Alice",
		Email:             "a@x.com",
		PasswordHash:      "$2a$10$hash",
		VerificationToken: &tok,
		TokenExpiry:       &expiry,
		CreatedAt:         time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts`)).
		WithArgs(acc.AccountID, acc.Name, acc.Email, acc.PasswordHash,
			false, acc.VerificationToken, acc.TokenExpiry, acc.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	err := repo.Create(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, int64(7), acc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		repo := repository.NewAccountRepository(mock)

		want := &model.Account{
			ID:        7,
			AccountID: "8e2b9c2e-9a4f-4a7e-bf7e-1c2d3e4f5a6b",
			Name:      "Alice",
			Email:     "a@x.com",
			CreatedAt: time.Now(),
		}
		mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts WHERE email=$1`)).
			WithArgs("a@x.com").
			WillReturnRows(accountRows(want))

		got, err := repo.GetByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, want.AccountID, got.AccountID)
		assert.Nil(t, got.VerificationToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		repo := repository.NewAccountRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts WHERE email=$1`)).
			WithArgs("nobody@x.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestAccountRepository_GetByAccountID(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewAccountRepository(mock)

	want := &model.Account{
		ID:         7,
		AccountID:  "8e2b9c2e-9a4f-4a7e-bf7e-1c2d3e4f5a6b",
		Name:       "Alice",
		Email:      "a@x.com",
		IsVerified: true,
		CreatedAt:  time.Now(),
	}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts WHERE account_id=$1`)).
		WithArgs(want.AccountID).
		WillReturnRows(accountRows(want))

	got, err := repo.GetByAccountID(context.Background(), want.AccountID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_EmailExists(t *testing.T) {
	mock := newMock(t)
	repo := repository.NewAccountRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAccountRepository_ConsumeVerificationToken(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		want         bool
	}{
		{name: "token matched and consumed", rowsAffected: 1, want: true},
		{name: "no matching live token", rowsAffected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := repository.NewAccountRepository(mock)

			mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts`)).
				WithArgs("a@x.com", "signed-token", pgxmock.AnyArg()).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rowsAffected))

			ok, err := repo.ConsumeVerificationToken(context.Background(), "a@x.com", "signed-token", time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_RotateVerificationToken(t *testing.T) {
	t.Run("rotates", func(t *testing.T) {
		mock := newMock(t)
		repo := repository.NewAccountRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts SET verification_token=$2, token_expiry=$3 WHERE email=$1`)).
			WithArgs("a@x.com", "new-token", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.RotateVerificationToken(context.Background(), "a@x.com", "new-token", time.Now().Add(15*time.Minute))
		assert.NoError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		mock := newMock(t)
		repo := repository.NewAccountRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE accounts SET verification_token=$2, token_expiry=$3 WHERE email=$1`)).
			WithArgs("nobody@x.com", "new-token", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.RotateVerificationToken(context.Background(), "nobody@x.com", "new-token", time.Now())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
