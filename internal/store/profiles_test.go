package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/cefr"
	"github.com/abhisek/lingua/internal/profile"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestProfiles(t *testing.T) (*ProfileStore, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	return NewProfileStore(kv, nil), kv
}

func TestLoadUnknown(t *testing.T) {
	s, _ := newTestProfiles(t)
	p, err := s.Load(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestProfiles(t)

	p, err := profile.New("Ada@Example.com", "Ada", testNow)
	require.NoError(t, err)
	p.XPTotal = 120
	p.LevelXP = 40
	p.CEFRLevel = cefr.B1

	require.NoError(t, s.Save(ctx, p))

	got, err := s.Load(ctx, " ADA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// Unauthenticated saves leave the active pointer alone.
	_, err = kv.Get(ctx, activeUserKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAuthenticatedSetsActive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestProfiles(t)

	p, err := profile.New("grace@example.com", "", testNow)
	require.NoError(t, err)
	p.Authenticated = true
	require.NoError(t, s.Save(ctx, p))

	active, err := s.LoadActiveUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", active.Email)
	assert.True(t, active.Authenticated)
}

func TestSaveRequiresEmail(t *testing.T) {
	s, _ := newTestProfiles(t)
	err := s.Save(context.Background(), profile.Guest())
	assert.ErrorIs(t, err, profile.ErrInvalidEmail)
}

func TestLoadActiveUserFallsBackToGuest(t *testing.T) {
	ctx := context.Background()

	t.Run("no pointer", func(t *testing.T) {
		s, _ := newTestProfiles(t)
		p, err := s.LoadActiveUser(ctx)
		require.NoError(t, err)
		assert.True(t, p.IsGuest())
		assert.Equal(t, profile.GuestName, p.Name)
	})

	t.Run("dangling pointer", func(t *testing.T) {
		s, kv := newTestProfiles(t)
		require.NoError(t, kv.Set(ctx, activeUserKey, []byte("ghost@example.com")))
		p, err := s.LoadActiveUser(ctx)
		require.NoError(t, err)
		assert.True(t, p.IsGuest())
	})

	t.Run("empty pointer", func(t *testing.T) {
		s, kv := newTestProfiles(t)
		require.NoError(t, kv.Set(ctx, activeUserKey, []byte("  ")))
		p, err := s.LoadActiveUser(ctx)
		require.NoError(t, err)
		assert.True(t, p.IsGuest())
	})
}

func TestLoadRecoversCorruptProfile(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestProfiles(t)

	require.NoError(t, kv.Set(ctx, UserKey("eve@example.com"), []byte(`{"xpTotal": "lots", "cefrLevel": "Z9", "masteryMap": [1,2]`)))
	require.NoError(t, kv.Set(ctx, activeUserKey, []byte("eve@example.com")))

	p, err := s.LoadActiveUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "eve@example.com", p.Email)
	assert.Equal(t, "eve", p.Name)
	assert.Equal(t, cefr.A1, p.CEFRLevel)
	assert.Len(t, p.Mastery, len(profile.AllSkills()))
}

func TestLoginCreatesThenReuses(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestProfiles(t)

	first, err := s.Login(ctx, "lin@example.com", "", testNow)
	require.NoError(t, err)
	assert.True(t, first.Authenticated)
	assert.Equal(t, "lin", first.Name)

	first.XPTotal = 75
	require.NoError(t, s.Save(ctx, first))

	again, err := s.Login(ctx, "LIN@example.com", "Lin Q", testNow.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 75, again.XPTotal)
	assert.Equal(t, "Lin Q", again.Name)
}

func TestLoginRequiresEmail(t *testing.T) {
	s, _ := newTestProfiles(t)
	_, err := s.Login(context.Background(), "   ", "", testNow)
	assert.ErrorIs(t, err, profile.ErrInvalidEmail)
}

func TestLogoutKeepsData(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestProfiles(t)

	p, err := s.Login(ctx, "mo@example.com", "Mo", testNow)
	require.NoError(t, err)
	p.XPTotal = 42
	require.NoError(t, s.Save(ctx, p))

	require.NoError(t, s.Logout(ctx))

	_, err = kv.Get(ctx, activeUserKey)
	assert.ErrorIs(t, err, ErrNotFound)

	active, err := s.LoadActiveUser(ctx)
	require.NoError(t, err)
	assert.True(t, active.IsGuest())

	stored, err := s.Load(ctx, "mo@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Authenticated)
	assert.Equal(t, 42, stored.XPTotal)

	// Logging out again is harmless.
	assert.NoError(t, s.Logout(ctx))
}

func TestSwitchingUsers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestProfiles(t)

	_, err := s.Login(ctx, "one@example.com", "", testNow)
	require.NoError(t, err)
	_, err = s.Login(ctx, "two@example.com", "", testNow)
	require.NoError(t, err)

	active, err := s.LoadActiveUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two@example.com", active.Email)
}

func TestProfileStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(openTestSQLite(t), nil)

	p, err := s.Login(ctx, "sql@example.com", "", testNow)
	require.NoError(t, err)

	got, err := s.LoadActiveUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
