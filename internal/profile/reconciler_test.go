package profile

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web3guy0/poolbot/internal/database"
)

func TestReconcile_CreatesMissingRow(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	out, err := NewReconciler(db).Reconcile(ctx, 42, HighRisk)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Applied: true, Classification: HighRisk}, out)

	user, err := db.Find(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "high-risk", user.RiskProfile)
}

func TestReconcile_SwitchKeepsSingleRow(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	r := NewReconciler(db)

	_, err := r.Reconcile(ctx, 42, Stable)
	require.NoError(t, err)
	_, err = r.Reconcile(ctx, 42, HighRisk)
	require.NoError(t, err)

	n, err := db.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	user, err := db.Find(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "high-risk", user.RiskProfile)
}

func TestReconcile_Idempotent(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	r := NewReconciler(db)

	for i := 0; i < 2; i++ {
		out, err := r.Reconcile(ctx, 42, Stable)
		require.NoError(t, err)
		assert.True(t, out.Applied)
	}

	n, err := db.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	user, err := db.Find(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "stable", user.RiskProfile)
}

func TestReconcile_ConcurrentCallsConverge(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()
	r := NewReconciler(db)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Reconcile(ctx, 42, HighRisk)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := db.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	user, err := db.Find(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "high-risk", user.RiskProfile)
}

func TestReconcile_PreservesPassthroughColumns(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	_, err := db.Create(ctx, 42, database.User{
		Username:      "alice",
		WalletAddress: "0x52908400098527886E0F7030069857D2E4169EE7",
		IsSubscribed:  true,
	})
	require.NoError(t, err)

	_, err = NewReconciler(db).Reconcile(ctx, 42, HighRisk)
	require.NoError(t, err)

	user, err := db.Find(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", user.WalletAddress)
	assert.True(t, user.IsSubscribed)
}

func TestReconcile_InvalidClassificationSkipsStorage(t *testing.T) {
	store := &brokenStore{}

	out, err := NewReconciler(store).Reconcile(context.Background(), 42, Classification("yolo"))
	assert.ErrorIs(t, err, ErrInvalidClassification)
	assert.False(t, out.Applied)
	assert.Equal(t, 0, store.Calls())
}

func TestReconcile_StorageFailureIsTyped(t *testing.T) {
	store := &brokenStore{}

	out, err := NewReconciler(store).Reconcile(context.Background(), 42, Stable)
	require.Error(t, err)
	assert.False(t, out.Applied)
	assert.True(t, IsStorageError(err))
	assert.ErrorIs(t, err, errDown)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int64(42), se.UserID)
}
