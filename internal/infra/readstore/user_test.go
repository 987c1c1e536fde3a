//go:build unit

package readstore

import (
	"context"
	"testing"

	"inspection-marketplace/internal/infra"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserReadQueries struct {
	mock.Mock
}

func (m *MockUserReadQueries) FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Users), args.Error(1)
}

func TestFindByID(t *testing.T) {
	testUser := builder.NewUserBuilder().BuildInfra()
	unverifiedUser := builder.NewUserBuilder().AsUnverified().AsInactive().BuildInfra()

	tests := []struct {
		name       string
		userID     uuid.UUID
		mockReturn sqlc.Users
		mockError  error
		wantUser   bool
		wantError  bool
	}{
		{
			name:       "success - active user",
			userID:     testUser.ID,
			mockReturn: testUser,
			wantUser:   true,
		},
		{
			name:       "success - inactive unverified user (for validation)",
			userID:     unverifiedUser.ID,
			mockReturn: unverifiedUser,
			wantUser:   true,
		},
		{
			name:       "user not found",
			userID:     uuid.New(),
			mockReturn: sqlc.Users{},
			mockError:  pgx.ErrNoRows,
			wantError:  true,
		},
		{
			name:       "database error",
			userID:     testUser.ID,
			mockReturn: sqlc.Users{},
			mockError:  assert.AnError,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockUserReadQueries)
			mockQueries.On("FindUserByID", mock.Anything, mock.Anything, tt.userID).Return(tt.mockReturn, tt.mockError)

			readStore := NewUserReadStore(mockQueries, nil)

			userReadModel, err := readStore.FindByID(context.Background(), tt.userID)

			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, userReadModel)

				if tt.mockError == pgx.ErrNoRows {
					assert.True(t, infra.IsKind(err, infra.KindNotFound))
				} else {
					assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.userID, userReadModel.ID)
				assert.Equal(t, tt.mockReturn.EmailVerified, userReadModel.EmailVerified)
				assert.Equal(t, tt.mockReturn.IsActive, userReadModel.IsActive)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}
