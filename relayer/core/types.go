package core

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ProcessedEvent is one validated TokensLocked occurrence, ready for
// submission to the destination chain. Consumed once by the submitter.
type ProcessedEvent struct {
	Recipient   common.Address
	Amount      *big.Int
	SourceNonce *big.Int
	TxHash      common.Hash
	BlockNumber uint64
}

// ProcessedEventRecord is the durable marker kept per consumed nonce.
type ProcessedEventRecord struct {
	TxHash      string `cbor:"t" json:"t"`
	BlockNumber uint64 `cbor:"b" json:"b"`
	Recipient   string `cbor:"r" json:"r"`
	Amount      string `cbor:"a" json:"a"`
}

func NewProcessedEventRecord(event *ProcessedEvent) *ProcessedEventRecord {
	return &ProcessedEventRecord{
		TxHash:      event.TxHash.String(),
		BlockNumber: event.BlockNumber,
		Recipient:   event.Recipient.String(),
		Amount:      event.Amount.String(),
	}
}
