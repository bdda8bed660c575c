package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/estately/domain"
)

// loginAs drives the full OTP flow for a seeded account.
func loginAs(t *testing.T, env *testEnv, phone string) *domain.Session {
	t.Helper()
	ctx := context.Background()

	_, err := env.Sessions.StartAuth(ctx, phone)
	require.NoError(t, err)
	_, err = env.Sessions.VerifyOTP(ctx, phone, env.lastOTP(t))
	require.NoError(t, err)

	session := env.Sessions.Current()
	require.NotNil(t, session)
	return session
}

func TestPublicBrowsingWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	props, err := env.Properties.List(ctx)
	require.NoError(t, err)
	assert.Len(t, props, 4)

	featured, err := env.Properties.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	one, err := env.Properties.Get(ctx, props[0].ID)
	require.NoError(t, err)
	assert.Equal(t, props[0].Title, one.Title)

	results, err := env.Properties.Search(ctx, domain.PropertySearch{Location: "wakad"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Lakeview Residency 3BHK", results[0].Title)

	results, err = env.Properties.Search(ctx, domain.PropertySearch{MaxPrice: 8000000, Bedrooms: 2})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Sunrise Heights 2BHK", results[0].Title)
}

func TestBookingRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Backend.SeedUser("Ravi Mehta", "ravi@example.com", "9123456780", domain.RoleUser, false))
	loginAs(t, env, "9123456780")

	props, err := env.Properties.List(ctx)
	require.NoError(t, err)

	visit := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	booking, err := env.Bookings.Create(ctx, props[0].ID, &domain.Booking{VisitDate: visit, Notes: "morning preferred"})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, "9123456780", booking.ContactNo)

	mine, err := env.Bookings.UserBookings(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, booking.ID, mine[0].ID)

	byProp, err := env.Bookings.UserPropertyBooking(ctx, props[0].ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, byProp.ID)
}

func TestShortlistToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Backend.SeedUser("Ravi Mehta", "ravi@example.com", "9123456780", domain.RoleUser, false))
	loginAs(t, env, "9123456780")

	props, err := env.Properties.List(ctx)
	require.NoError(t, err)

	on, err := env.Shortlist.Toggle(ctx, props[0].ID)
	require.NoError(t, err)
	assert.True(t, on)

	entries, err := env.Shortlist.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, props[0].ID, entries[0].PropertyID)

	off, err := env.Shortlist.Toggle(ctx, props[0].ID)
	require.NoError(t, err)
	assert.False(t, off)

	entries, err = env.Shortlist.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProfileUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Backend.SeedUser("Ravi Mehta", "ravi@example.com", "9123456780", domain.RoleUser, false))
	loginAs(t, env, "9123456780")

	updated, err := env.Profile.UpdateProfile(ctx, &domain.Profile{Name: "Ravi M."})
	require.NoError(t, err)
	assert.Equal(t, "Ravi M.", updated.Name)
	assert.Equal(t, "ravi@example.com", updated.Email, "unset fields keep their value")
}

func TestAdminRoleGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Backend.SeedUser("Admin", "admin@example.com", "9999999999", domain.RoleAdmin, false))
	session := loginAs(t, env, "9999999999")
	assert.Equal(t, domain.RoleAdmin, session.Role)

	created, err := env.Properties.Create(ctx, &domain.Property{
		Title:    "Skyline Towers 3BHK",
		Location: "Hinjewadi, Pune",
		Price:    9500000,
		Bedrooms: 3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	all, err := env.Bookings.AllBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, env.Properties.Delete(ctx, created.ID))
}

func TestAdminPropertyUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Backend.SeedUser("Admin", "admin@example.com", "9999999999", domain.RoleAdmin, false))
	loginAs(t, env, "9999999999")

	props, err := env.Properties.AdminList(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, props)
	target := props[0]

	target.Price = target.Price + 500000
	target.Featured = !target.Featured
	updated, err := env.Properties.Update(ctx, target.ID, &target)
	require.NoError(t, err)
	assert.Equal(t, target.ID, updated.ID, "update keeps the identity of the record")
	assert.Equal(t, target.Price, updated.Price)
	assert.Equal(t, target.Featured, updated.Featured)

	// The public detail view reflects the change.
	fetched, err := env.Properties.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.Price, fetched.Price)

	_, err = env.Properties.Update(ctx, "no-such-id", &target)
	require.Error(t, err)
}

func TestAdminListRequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Backend.SeedUser("Ravi Mehta", "ravi@example.com", "9123456780", domain.RoleUser, false))
	loginAs(t, env, "9123456780")

	_, err := env.Properties.AdminList(ctx)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestForbiddenAdminCallTearsDownSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.Backend.SeedUser("Ravi Mehta", "ravi@example.com", "9123456780", domain.RoleUser, false))
	loginAs(t, env, "9123456780")

	// A 403 from a protected endpoint invalidates the session, exactly like
	// an auth failure.
	_, err := env.Bookings.AllBookings(ctx)
	require.ErrorIs(t, err, domain.ErrForbidden)

	assert.Nil(t, env.Sessions.Current())
	stored, err := env.Creds.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Public browsing is unaffected by the teardown.
	props, err := env.Properties.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, props)
}
