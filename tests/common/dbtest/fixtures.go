//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"inspection-marketplace/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plain-text password of every fixture user.
const DefaultPassword = "password123"

var (
	hashOnce    sync.Once
	defaultHash string
)

func passwordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := password.HashPasswordWithCost(DefaultPassword, bcrypt.MinCost)
		require.NoError(t, err)
		defaultHash = h
	})
	return defaultHash
}

// CreateTestUser inserts an active user with a verified email, or returns the id of the
// existing user with that email.
func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, password_hash, role, email_verified, is_active)
		VALUES ($1, $2, $3, $4, true, true) ON CONFLICT (email) DO NOTHING`,
		userID, email, passwordHash(t), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

// CreateBookableMechanic inserts a mechanic who passes every bookability check: identity
// verified, payouts enabled, accepting cars around Paris.
func CreateBookableMechanic(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	id := CreateTestUser(t, db, email, "mechanic")
	_, err := db.Exec(context.Background(), `INSERT INTO mechanic_profiles
		(user_id, identity_verified, accepted_vehicle_types, service_radius_km, free_zone_km,
		 base_lat, base_lng, payout_account_id, payouts_enabled)
		VALUES ($1, true, '{car,van}', 50, 10, 48.8566, 2.3522, $2, true)
		ON CONFLICT (user_id) DO NOTHING`,
		id, "acct_"+strings.ReplaceAll(id.String(), "-", "")[:16])
	require.NoError(t, err)
	return id
}

// CreateTestSlot inserts a free availability slot.
func CreateTestSlot(t *testing.T, db DBLike, mechanicID uuid.UUID, startsAt time.Time, d time.Duration) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO availability_slots (id, mechanic_id, starts_at, ends_at) VALUES ($1, $2, $3, $4)",
		id, mechanicID, startsAt, startsAt.Add(d))
	require.NoError(t, err)
	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table except the migration bookkeeping.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
