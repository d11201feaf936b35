package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/web3guy0/poolbot/internal/database"
)

// Messages shared by every failure path.
const (
	MsgStorageFailure = "⚠️ Something went wrong while saving your settings. Please try again in a moment."
	MsgNotProfile     = "❓ That is not a profile action. Use /profile to pick Stable or High-risk."
	MsgInvalidProfile = "❓ Unknown risk profile. Choose Stable or High-risk."
	MsgInvalidWallet  = "❌ That is not a valid wallet address. Send it as /connect 0x... (42 characters)."
)

// Result is what the transport shows the user. Err carries the typed
// failure for callers that branch on it; it is nil on success.
type Result struct {
	Success        bool
	Message        string
	Classification Classification
	Err            error
}

// Service is the entry point for every profile interaction. None of its
// methods return an error: failures come back as a Result with Success false.
type Service struct {
	store      Store
	reconciler *Reconciler
	snapshots  *SnapshotReader
}

func NewService(store Store) *Service {
	return &Service{
		store:      store,
		reconciler: NewReconciler(store),
		snapshots:  NewSnapshotReader(store),
	}
}

// ApplyIdentifier normalizes a button or command payload and, if it names a
// classification, stores it for userID.
func (s *Service) ApplyIdentifier(ctx context.Context, identifier string, userID int64) Result {
	c, ok := Normalize(identifier)
	if !ok {
		log.Debug().Str("identifier", identifier).Int64("user_id", userID).Msg("Identifier is not a profile action")
		return Result{Message: MsgNotProfile, Err: ErrUnrecognizedIdentifier}
	}
	return s.setProfile(ctx, userID, c)
}

// SetProfile stores a classification given by its canonical value. Values
// outside the set are rejected before storage is touched.
func (s *Service) SetProfile(ctx context.Context, userID int64, value string) Result {
	c, err := ParseClassification(value)
	if err != nil {
		return Result{Message: MsgInvalidProfile, Err: err}
	}
	return s.setProfile(ctx, userID, c)
}

func (s *Service) setProfile(ctx context.Context, userID int64, c Classification) Result {
	out, err := s.reconciler.Reconcile(ctx, userID, c)
	if err != nil {
		return s.failure(err, userID, "set risk profile")
	}

	msg, err := Render(out.Classification)
	if err != nil {
		return s.failure(err, userID, "render risk profile")
	}

	log.Info().Int64("user_id", userID).Str("risk_profile", string(c)).Msg("Risk profile updated")
	return Result{Success: true, Message: msg, Classification: out.Classification}
}

// Snapshot returns the account summary of userID, creating the row if needed.
func (s *Service) Snapshot(ctx context.Context, userID int64, username string) (Snapshot, Result) {
	snap, err := s.snapshots.ReadSnapshot(ctx, userID, username)
	if err != nil {
		return Snapshot{}, s.failure(err, userID, "read account")
	}
	return snap, Result{Success: true, Message: renderAccount(snap), Classification: snap.Classification}
}

// Account renders the account summary of userID.
func (s *Service) Account(ctx context.Context, userID int64, username string) Result {
	_, res := s.Snapshot(ctx, userID, username)
	return res
}

// ConnectWallet validates and stores a wallet address for userID.
func (s *Service) ConnectWallet(ctx context.Context, userID int64, raw string) Result {
	addr, err := NormalizeWallet(raw)
	if err != nil {
		return Result{Message: MsgInvalidWallet, Err: err}
	}

	if err := s.store.Upsert(ctx, &database.User{ID: userID, WalletAddress: addr}, "wallet_address"); err != nil {
		return s.failure(storageError("upsert wallet_address", userID, err), userID, "connect wallet")
	}

	log.Info().Int64("user_id", userID).Str("wallet", ShortAddress(addr)).Msg("Wallet connected")
	return Result{
		Success: true,
		Message: fmt.Sprintf("✅ Wallet connected: `%s`", ShortAddress(addr)),
	}
}

// DisconnectWallet clears the stored wallet address of userID.
func (s *Service) DisconnectWallet(ctx context.Context, userID int64) Result {
	if err := s.store.Upsert(ctx, &database.User{ID: userID}, "wallet_address"); err != nil {
		return s.failure(storageError("clear wallet_address", userID, err), userID, "disconnect wallet")
	}
	return Result{Success: true, Message: "🔌 Wallet disconnected."}
}

// SetSubscription turns pool alerts on or off for userID.
func (s *Service) SetSubscription(ctx context.Context, userID int64, on bool) Result {
	if err := s.store.Upsert(ctx, &database.User{ID: userID, IsSubscribed: on}, "is_subscribed"); err != nil {
		return s.failure(storageError("upsert is_subscribed", userID, err), userID, "set subscription")
	}
	if on {
		return Result{Success: true, Message: "🔔 Alerts enabled. You will get pool updates for your risk profile."}
	}
	return Result{Success: true, Message: "🔕 Alerts disabled."}
}

// ToggleSubscription flips the alert flag of userID.
func (s *Service) ToggleSubscription(ctx context.Context, userID int64, username string) Result {
	user, err := s.store.Create(ctx, userID, database.User{Username: username})
	if err != nil {
		return s.failure(storageError("read subscription", userID, err), userID, "toggle subscription")
	}
	return s.SetSubscription(ctx, userID, !user.IsSubscribed)
}

func (s *Service) failure(err error, userID int64, action string) Result {
	switch {
	case errors.Is(err, ErrInvalidClassification):
		return Result{Message: MsgInvalidProfile, Err: err}
	case IsStorageError(err):
		log.Error().Err(err).Int64("user_id", userID).Str("action", action).Msg("Storage failure")
		return Result{Message: MsgStorageFailure, Err: err}
	default:
		log.Error().Err(err).Int64("user_id", userID).Str("action", action).Msg("Profile operation failed")
		return Result{Message: MsgStorageFailure, Err: err}
	}
}

func renderAccount(s Snapshot) string {
	return fmt.Sprintf(`👤 *Your account*
━━━━━━━━━━━━━━━━━━━━━

💳 *Wallet:* %s
🎯 *Risk profile:* %s
🔔 *Alerts:* %s

━━━━━━━━━━━━━━━━━━━━━`,
		s.WalletStatus, s.ProfileLabel, s.SubscriptionStatus)
}
