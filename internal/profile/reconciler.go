package profile

import (
	"context"

	"github.com/web3guy0/poolbot/internal/database"
)

// Store is the persistence the profile package needs. *database.Database
// satisfies it.
type Store interface {
	Find(ctx context.Context, id int64) (*database.User, error)
	Create(ctx context.Context, id int64, defaults database.User) (*database.User, error)
	Upsert(ctx context.Context, user *database.User, columns ...string) error
}

// Outcome reports what Reconcile stored.
type Outcome struct {
	Applied        bool
	Classification Classification
}

// Reconciler makes the stored risk profile of a user match a requested one.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile leaves exactly one row for userID with risk_profile == c. The row
// is created when missing; otherwise only risk_profile changes. The write is
// a single upsert, so concurrent and repeated calls converge on the last
// committed value without duplicating the row.
func (r *Reconciler) Reconcile(ctx context.Context, userID int64, c Classification) (Outcome, error) {
	if !c.Valid() {
		return Outcome{Classification: c}, invalidClassification(string(c))
	}

	user := &database.User{ID: userID, RiskProfile: string(c)}
	if err := r.store.Upsert(ctx, user, "risk_profile"); err != nil {
		return Outcome{Classification: c}, storageError("upsert risk_profile", userID, err)
	}

	return Outcome{Applied: true, Classification: c}, nil
}
