package core

import (
	"context"
	"math/big"

	"github.com/Vikakfuse/star-craft/eth"
)

type RelayerManager interface {
	Start() error
	Stop() error
}

type Relayer interface {
	Start(ctx context.Context)
}

type EventProcessor interface {
	Process(raw *eth.LockEventLog) (*ProcessedEvent, error)
}

type TxSubmitter interface {
	Submit(ctx context.Context, event *ProcessedEvent) bool
}

type Database interface {
	AddProcessedNonce(chainID string, nonce *big.Int, record *ProcessedEventRecord) error
	IsNonceProcessed(chainID string, nonce *big.Int) (bool, error)
	GetProcessedNonceRecord(chainID string, nonce *big.Int) (*ProcessedEventRecord, error)
	UpdateLastScannedBlock(chainID string, blockNumber uint64) error
	GetLastScannedBlock(chainID string) (uint64, bool, error)
	Close() error
}
