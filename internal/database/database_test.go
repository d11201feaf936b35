package database

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestFind_Missing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Find(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreate_AppliesDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.Create(ctx, 42, User{Username: "alice"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, DefaultRiskProfile, user.RiskProfile)
	assert.Empty(t, user.WalletAddress)
	assert.False(t, user.IsSubscribed)
	assert.False(t, user.IsVerified)
}

func TestCreate_LeavesExistingRowUntouched(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Upsert(ctx, &User{ID: 42, Username: "alice", RiskProfile: "high-risk"}, "risk_profile"))

	user, err := db.Create(ctx, 42, User{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "high-risk", user.RiskProfile)

	n, err := db.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUpsert_InsertsMissingRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Upsert(ctx, &User{ID: 7, RiskProfile: "high-risk"}, "risk_profile"))

	user, err := db.Find(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "high-risk", user.RiskProfile)
}

func TestUpsert_OnlyTouchesNamedColumns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Create(ctx, 42, User{
		Username:      "alice",
		WalletAddress: "0x52908400098527886E0F7030069857D2E4169EE7",
		IsSubscribed:  true,
		IsVerified:    true,
	})
	require.NoError(t, err)

	// Zero values in the other fields must not clobber the stored row.
	require.NoError(t, db.Upsert(ctx, &User{ID: 42, RiskProfile: "high-risk"}, "risk_profile"))

	user, err := db.Find(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "high-risk", user.RiskProfile)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", user.WalletAddress)
	assert.True(t, user.IsSubscribed)
	assert.True(t, user.IsVerified)
}

func TestUpsert_CanClearColumn(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Upsert(ctx, &User{ID: 42, WalletAddress: "0xabc"}, "wallet_address"))
	require.NoError(t, db.Upsert(ctx, &User{ID: 42}, "wallet_address"))

	user, err := db.Find(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, user.WalletAddress)
	assert.Equal(t, DefaultRiskProfile, user.RiskProfile)
}

func TestUpsert_RejectsUnknownColumns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.Upsert(ctx, &User{ID: 1}, "id")
	assert.Error(t, err)

	err = db.Upsert(ctx, &User{ID: 1})
	assert.Error(t, err)

	_, err = db.Find(ctx, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpsert_ConcurrentWritersKeepOneRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	profiles := []string{"stable", "high-risk"}
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			errs <- db.Upsert(ctx, &User{ID: 42, RiskProfile: p}, "risk_profile")
		}(profiles[i%2])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := db.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	user, err := db.Find(ctx, 42)
	require.NoError(t, err)
	assert.Contains(t, profiles, user.RiskProfile)
}

func TestCountByRiskProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Upsert(ctx, &User{ID: 1, RiskProfile: "stable"}, "risk_profile"))
	require.NoError(t, db.Upsert(ctx, &User{ID: 2, RiskProfile: "high-risk"}, "risk_profile"))
	require.NoError(t, db.Upsert(ctx, &User{ID: 3, RiskProfile: "high-risk"}, "risk_profile"))

	counts, err := db.CountByRiskProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"stable": 1, "high-risk": 2}, counts)
}
