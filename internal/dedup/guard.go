// Package dedup suppresses repeated button presses that arrive within a short
// window. It is advisory only; correctness of stored data never depends on it.
package dedup

import (
	"context"
	"fmt"
	"time"
)

// Guard records interactions and reports whether one repeats a recent one.
type Guard interface {
	// Seen records key and reports true when the previous recorded
	// interaction for key happened less than window ago.
	Seen(ctx context.Context, key string, window time.Duration) (bool, error)
}

// ButtonKey identifies a button pressed in a chat.
func ButtonKey(chatID int64, button string) string {
	return fmt.Sprintf("btn:%d:%s", chatID, button)
}

// ConnectKey identifies wallet-connect attempts of a user.
func ConnectKey(userID int64) string {
	return fmt.Sprintf("connect:%d", userID)
}
