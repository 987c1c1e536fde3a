//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/jwt"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCommands(t *testing.T) {
	ctx := context.Background()
	jwtService := jwt.NewService("test-jwt-secret", time.Hour)

	setup := func(t *testing.T) (*harness, commands.AuthCommands) {
		h := newHarness(t)
		return h, commands.NewAuthCommands(h.store, jwtService, h.clock)
	}

	t.Run("register then login", func(t *testing.T) {
		h, cmds := setup(t)

		id, err := cmds.Register(ctx, commands.RegisterInput{Email: "new@example.com", Password: "password123", Role: "mechanic"})
		require.NoError(t, err)

		u := h.store.User(id)
		require.NotNil(t, u)
		assert.Equal(t, user.RoleMechanic, u.Role())
		assert.False(t, u.EmailVerified())
		assert.NotEqual(t, "password123", u.PasswordHash())

		res, err := cmds.Login(ctx, "new@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, id, res.UserID)
		assert.Equal(t, time.Hour, res.ExpiresIn)

		claims, err := jwtService.ValidateToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, id, claims.UserID)
		assert.Equal(t, "mechanic", claims.Role)
	})

	t.Run("register validation", func(t *testing.T) {
		tests := []struct {
			name string
			in   commands.RegisterInput
			want error
		}{
			{name: "taken email", in: commands.RegisterInput{Email: "buyer@example.com", Password: "password123", Role: "buyer"}, want: commands.ErrEmailTaken},
			{name: "admins are not self-registered", in: commands.RegisterInput{Email: "root@example.com", Password: "password123", Role: "admin"}, want: commands.ErrForbidden},
			{name: "unknown role", in: commands.RegisterInput{Email: "x@example.com", Password: "password123", Role: "owner"}, want: user.ErrInvalidRole},
			{name: "short password", in: commands.RegisterInput{Email: "x@example.com", Password: "short", Role: "buyer"}, want: user.ErrPasswordTooWeak},
			{name: "bad email", in: commands.RegisterInput{Email: "not-an-email", Password: "password123", Role: "buyer"}, want: user.ErrInvalidEmail},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, cmds := setup(t)

				_, err := cmds.Register(ctx, tt.in)

				requireIs(t, err, tt.want)
			})
		}
	})

	t.Run("login failures do not reveal which part was wrong", func(t *testing.T) {
		h, cmds := setup(t)
		_, err := cmds.Register(ctx, commands.RegisterInput{Email: "new@example.com", Password: "password123", Role: "buyer"})
		require.NoError(t, err)

		_, err = cmds.Login(ctx, "new@example.com", "password124")
		requireIs(t, err, commands.ErrInvalidCredentials)

		_, err = cmds.Login(ctx, "ghost@example.com", "password123")
		requireIs(t, err, commands.ErrInvalidCredentials)

		_, err = cmds.Login(ctx, "new@example.com", "x")
		requireIs(t, err, commands.ErrInvalidCredentials)

		assert.Zero(t, h.store.Aborts)
	})

	t.Run("inactive users cannot log in", func(t *testing.T) {
		h, cmds := setup(t)
		id, err := cmds.Register(ctx, commands.RegisterInput{Email: "gone@example.com", Password: "password123", Role: "buyer"})
		require.NoError(t, err)
		u := h.store.User(id)
		inactive, err := builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
			b.ID = u.ID()
			b.Email = "gone@example.com"
			b.PasswordHash = u.PasswordHash()
			b.IsActive = false
		}).BuildDomain()
		require.NoError(t, err)
		h.store.PutUser(inactive)

		_, err = cmds.Login(ctx, "gone@example.com", "password123")

		requireIs(t, err, commands.ErrUserInactive)
	})

	t.Run("logout revokes the token once", func(t *testing.T) {
		h, cmds := setup(t)
		exp := testNow.Add(time.Hour)

		require.NoError(t, cmds.Logout(ctx, h.buyer.ID(), "jti-1", exp))
		require.NoError(t, cmds.Logout(ctx, h.buyer.ID(), "jti-1", exp))

		assert.True(t, h.store.TokenRevoked("jti-1"))
	})
}

func TestAdminCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("verify email", func(t *testing.T) {
		h := newHarness(t)
		u, err := builder.NewUserBuilder().WithEmail("new@example.com").AsUnverified().BuildDomain()
		require.NoError(t, err)
		h.store.PutUser(u)

		require.NoError(t, h.admin.VerifyEmail(ctx, u.ID()))

		assert.True(t, h.store.User(u.ID()).EmailVerified())
	})

	t.Run("verify email of an unknown user", func(t *testing.T) {
		h := newHarness(t)

		err := h.admin.VerifyEmail(ctx, uuid.New())

		requireIs(t, err, commands.ErrUserNotFound)
	})

	t.Run("verify identity makes the mechanic bookable", func(t *testing.T) {
		h := newHarness(t)
		h.store.PutMechanic(builder.NewMechanicBuilder().
			WithID(h.mechanic.UserID()).
			With(func(s *mechanic.Snapshot) { s.IdentityVerified = false }).
			BuildDomain())
		require.Error(t, h.store.Mechanic(h.mechanic.UserID()).CheckBookable(booking.VehicleCar, testNow))

		require.NoError(t, h.admin.VerifyIdentity(ctx, h.mechanic.UserID()))

		m := h.store.Mechanic(h.mechanic.UserID())
		assert.True(t, m.IdentityVerified())
		assert.NoError(t, m.CheckBookable(booking.VehicleCar, testNow))
	})

	t.Run("verify identity of an unknown mechanic", func(t *testing.T) {
		h := newHarness(t)

		err := h.admin.VerifyIdentity(ctx, uuid.New())

		requireIs(t, err, commands.ErrMechanicNotFound)
	})
}

func TestMechanicCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("profile upsert keeps payout and verification state", func(t *testing.T) {
		h := newHarness(t)

		err := h.mechanics.UpsertProfile(ctx, h.mechanic.UserID(), commands.ProfileInput{
			BaseLat:         45.764,
			BaseLng:         4.8357,
			ServiceRadiusKm: 25,
			FreeZoneKm:      decimal.RequireFromString("5.125"),
			VehicleTypes:    []string{"motorcycle"},
		})

		require.NoError(t, err)
		m := h.store.Mechanic(h.mechanic.UserID())
		assert.Equal(t, 25.0, m.ServiceRadiusKm())
		assert.True(t, decimal.RequireFromString("5.13").Equal(m.FreeZoneKm()))
		assert.Equal(t, []booking.VehicleType{booking.VehicleMotorcycle}, m.AcceptedVehicleTypes())
		assert.True(t, m.IdentityVerified())
		assert.Equal(t, h.mechanic.PayoutAccountID(), m.PayoutAccountID())
	})

	t.Run("profile validation", func(t *testing.T) {
		h := newHarness(t)

		err := h.mechanics.UpsertProfile(ctx, h.mechanic.UserID(), commands.ProfileInput{
			BaseLat:         builder.Paris.Lat,
			BaseLng:         builder.Paris.Lng,
			ServiceRadiusKm: 0,
			FreeZoneKm:      decimal.Zero,
			VehicleTypes:    []string{"car"},
		})

		requireIs(t, err, mechanic.ErrInvalidServiceArea)
	})

	t.Run("payout onboarding attaches an account once", func(t *testing.T) {
		h := newHarness(t)
		h.store.PutMechanic(builder.NewMechanicBuilder().WithID(h.mechanic.UserID()).WithoutPayoutAccount().BuildDomain())

		res, err := h.mechanics.StartPayoutOnboarding(ctx, h.mechanic.UserID())

		require.NoError(t, err)
		assert.Equal(t, "acct_fake_1", res.AccountID)
		assert.Equal(t, h.payment.OnboardingURL, res.OnboardingURL)
		assert.Equal(t, []string{"mechanic@example.com"}, h.payment.Accounts)
		acct := h.store.Mechanic(h.mechanic.UserID()).PayoutAccountID()
		require.NotNil(t, acct)
		assert.Equal(t, "acct_fake_1", *acct)

		_, err = h.mechanics.StartPayoutOnboarding(ctx, h.mechanic.UserID())
		requireIs(t, err, commands.ErrPayoutAccountExists)
		assert.Len(t, h.payment.Accounts, 1)
	})

	t.Run("payout onboarding with the processor down", func(t *testing.T) {
		h := newHarness(t)
		h.store.PutMechanic(builder.NewMechanicBuilder().WithID(h.mechanic.UserID()).WithoutPayoutAccount().BuildDomain())
		h.payment.AccountErr = errs.New("timeout")

		_, err := h.mechanics.StartPayoutOnboarding(ctx, h.mechanic.UserID())

		requireIs(t, err, commands.ErrPaymentUnavailable)
		assert.Nil(t, h.store.Mechanic(h.mechanic.UserID()).PayoutAccountID())
	})

	t.Run("dashboard link", func(t *testing.T) {
		h := newHarness(t)

		url, err := h.mechanics.PayoutDashboardLink(ctx, h.mechanic.UserID())

		require.NoError(t, err)
		assert.Equal(t, h.payment.DashboardURL, url)
	})

	t.Run("dashboard link without an account", func(t *testing.T) {
		h := newHarness(t)
		h.store.PutMechanic(builder.NewMechanicBuilder().WithID(h.mechanic.UserID()).WithoutPayoutAccount().BuildDomain())

		_, err := h.mechanics.PayoutDashboardLink(ctx, h.mechanic.UserID())

		requireIs(t, err, mechanic.ErrNoPayoutAccount)
	})
}

func TestCreateSlot(t *testing.T) {
	ctx := context.Background()
	start := testNow.Add(48 * time.Hour)

	t.Run("creates a free slot", func(t *testing.T) {
		h := newHarness(t)

		id, err := h.slots.CreateSlot(ctx, h.mechanic.UserID(), start, start.Add(time.Hour))

		require.NoError(t, err)
		s := h.store.Slot(id)
		require.NotNil(t, s)
		assert.False(t, s.IsBooked())
		assert.Equal(t, start, s.StartsAt())
	})

	t.Run("touching slots do not overlap", func(t *testing.T) {
		h := newHarness(t)
		h.putSlot(start, time.Hour)

		_, err := h.slots.CreateSlot(ctx, h.mechanic.UserID(), start.Add(time.Hour), start.Add(2*time.Hour))

		require.NoError(t, err)
	})

	tests := []struct {
		name     string
		from, to time.Time
		want     error
	}{
		{name: "overlap", from: start.Add(30 * time.Minute), to: start.Add(90 * time.Minute), want: slot.ErrOverlap},
		{name: "in the past", from: testNow.Add(-time.Hour), to: testNow, want: slot.ErrInPast},
		{name: "ends before it starts", from: start, to: start.Add(-time.Hour), want: slot.ErrInvalidWindow},
		{name: "too long", from: start, to: start.Add(13 * time.Hour), want: slot.ErrInvalidWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.putSlot(start, time.Hour)

			_, err := h.slots.CreateSlot(ctx, h.mechanic.UserID(), tt.from, tt.to)

			requireIs(t, err, tt.want)
		})
	}

	t.Run("unknown mechanic", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.slots.CreateSlot(ctx, uuid.New(), start, start.Add(time.Hour))

		requireIs(t, err, commands.ErrMechanicNotFound)
	})
}
