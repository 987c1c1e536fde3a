//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserWriteQueries struct {
	mock.Mock
}

func (m *MockUserWriteQueries) CreateUser(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateUserParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockUserWriteQueries) MarkUserEmailVerified(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkUserEmailVerifiedParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

// sqlc.DBTX implementation for MockUserWriteQueries
func (m *MockUserWriteQueries) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockUserWriteQueries) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockUserWriteQueries) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

func TestCreateUser(t *testing.T) {
	email, err := user.NewEmail("Buyer@Example.com")
	require.NoError(t, err)
	u := user.NewUser(email, "hash", user.RoleBuyer, time.Now())

	tests := []struct {
		name      string
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{
			name:      "success",
			mockError: nil,
		},
		{
			name:      "email already taken",
			mockError: &pgconn.PgError{Code: "23505"},
			wantKind:  infra.KindDuplicateKey,
		},
		{
			name:      "database error",
			mockError: assert.AnError,
			wantKind:  infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserWriteQueries)
			mockQueries.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateUserParams) bool {
				return p.ID == u.ID() && p.Email == "buyer@example.com" && p.Role == "buyer"
			})).Return(tt.mockError)

			repo := NewUserRepository(mockQueries, mockQueries)

			err := repo.Create(context.Background(), u)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestMarkEmailVerified(t *testing.T) {
	testUserID := uuid.New()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		affected  int64
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{
			name:     "success",
			affected: 1,
		},
		{
			name:     "unknown user",
			affected: 0,
			wantKind: infra.KindNotFound,
		},
		{
			name:      "database error",
			mockError: assert.AnError,
			wantKind:  infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserWriteQueries)
			mockQueries.On("MarkUserEmailVerified", mock.Anything, mock.Anything, sqlc.MarkUserEmailVerifiedParams{
				ID:        testUserID,
				UpdatedAt: pgtypeTime(at),
			}).Return(tt.affected, tt.mockError)

			repo := NewUserRepository(mockQueries, mockQueries)

			err := repo.MarkEmailVerified(context.Background(), testUserID, at)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}
