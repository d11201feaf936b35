package profile

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizeWallet validates an EVM address and returns its EIP-55 checksum form.
func NormalizeWallet(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWallet, addr)
	}
	a := common.HexToAddress(addr)
	if a == (common.Address{}) {
		return "", fmt.Errorf("%w: zero address", ErrInvalidWallet)
	}
	return a.Hex(), nil
}

// LooksLikeWallet reports whether free text is a bare EVM address.
func LooksLikeWallet(text string) bool {
	return common.IsHexAddress(strings.TrimSpace(text))
}
