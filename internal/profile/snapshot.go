package profile

import (
	"context"

	"github.com/web3guy0/poolbot/internal/database"
)

const (
	walletNotConnected = "not connected"
	subscribed         = "subscribed"
	notSubscribed      = "not subscribed"
)

// Snapshot is the account summary of one user.
type Snapshot struct {
	WalletStatus       string
	ProfileLabel       string
	SubscriptionStatus string
	Classification     Classification
}

// SnapshotReader reads account summaries.
type SnapshotReader struct {
	store Store
}

func NewSnapshotReader(store Store) *SnapshotReader {
	return &SnapshotReader{store: store}
}

// ReadSnapshot summarizes userID's account. A user without a row gets one
// created with defaults, so every user who has talked to the bot has a row.
func (r *SnapshotReader) ReadSnapshot(ctx context.Context, userID int64, username string) (Snapshot, error) {
	user, err := r.store.Create(ctx, userID, database.User{Username: username})
	if err != nil {
		return Snapshot{}, storageError("read snapshot", userID, err)
	}
	return snapshotOf(user), nil
}

func snapshotOf(u *database.User) Snapshot {
	c := Classification(u.RiskProfile)
	if !c.Valid() {
		c = Stable
	}

	s := Snapshot{
		WalletStatus:       walletNotConnected,
		ProfileLabel:       c.Label(),
		SubscriptionStatus: notSubscribed,
		Classification:     c,
	}
	if u.WalletAddress != "" {
		s.WalletStatus = ShortAddress(u.WalletAddress)
	}
	if u.IsSubscribed {
		s.SubscriptionStatus = subscribed
	}
	return s
}

// ShortAddress renders a wallet as its first 6 and last 4 characters.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
