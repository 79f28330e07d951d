package eth

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// LockEventLog is one raw TokensLocked occurrence as read from the source
// chain. It lives for a single poll cycle and is not persisted.
type LockEventLog struct {
	TxHash      common.Hash
	BlockNumber uint64
	Args        map[string]interface{}
}

func (l *LockEventLog) Nonce() (*big.Int, bool) {
	nonce, ok := l.Args["nonce"].(*big.Int)

	return nonce, ok
}

func (l *LockEventLog) Recipient() (common.Address, bool) {
	recipient, ok := l.Args["recipient"].(common.Address)

	return recipient, ok
}

func (l *LockEventLog) Amount() (*big.Int, bool) {
	amount, ok := l.Args["amount"].(*big.Int)

	return amount, ok
}
