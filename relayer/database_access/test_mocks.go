package databaseaccess

import (
	"math/big"

	"github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/stretchr/testify/mock"
)

type DBMock struct {
	mock.Mock
}

var _ core.Database = (*DBMock)(nil)

func (m *DBMock) AddProcessedNonce(chainID string, nonce *big.Int, record *core.ProcessedEventRecord) error {
	return m.Called(chainID, nonce, record).Error(0)
}

func (m *DBMock) IsNonceProcessed(chainID string, nonce *big.Int) (bool, error) {
	args := m.Called(chainID, nonce)
	arg0, _ := args.Get(0).(bool)

	return arg0, args.Error(1)
}

func (m *DBMock) GetProcessedNonceRecord(chainID string, nonce *big.Int) (*core.ProcessedEventRecord, error) {
	args := m.Called(chainID, nonce)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*core.ProcessedEventRecord)

	return arg0, args.Error(1)
}

func (m *DBMock) UpdateLastScannedBlock(chainID string, blockNumber uint64) error {
	return m.Called(chainID, blockNumber).Error(0)
}

func (m *DBMock) GetLastScannedBlock(chainID string) (uint64, bool, error) {
	args := m.Called(chainID)
	arg0, _ := args.Get(0).(uint64)
	arg1, _ := args.Get(1).(bool)

	return arg0, arg1, args.Error(2)
}

func (m *DBMock) Close() error {
	return m.Called().Error(0)
}
