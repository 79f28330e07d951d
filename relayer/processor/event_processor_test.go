package processor

import (
	"errors"
	"math/big"
	"os"
	"path"
	"testing"

	"github.com/Vikakfuse/star-craft/eth"
	"github.com/Vikakfuse/star-craft/relayer/core"
	databaseaccess "github.com/Vikakfuse/star-craft/relayer/database_access"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testChainID = "sepolia"

func newRawLockEvent(nonce int64) *eth.LockEventLog {
	return &eth.LockEventLog{
		TxHash:      common.HexToHash("0xAB"),
		BlockNumber: 95,
		Args: map[string]interface{}{
			"sender":    common.HexToAddress("0x1111111111111111111111111111111111111111"),
			"recipient": common.HexToAddress("0x2222222222222222222222222222222222222222"),
			"amount":    big.NewInt(1000),
			"nonce":     big.NewInt(nonce),
		},
	}
}

func TestEventProcessor(t *testing.T) {
	testError := errors.New("test err")

	t.Run("drops event with no nonce", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		p := NewEventProcessor(testChainID, dbMock, hclog.NewNullLogger())

		raw := newRawLockEvent(5)
		delete(raw.Args, "nonce")

		event, err := p.Process(raw)
		require.Nil(t, event)
		require.ErrorIs(t, err, core.ErrNonceMissing)
		dbMock.AssertNotCalled(t, "AddProcessedNonce", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("drops replayed nonce", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("IsNonceProcessed", testChainID, big.NewInt(7)).Return(true, nil)

		p := NewEventProcessor(testChainID, dbMock, hclog.NewNullLogger())

		event, err := p.Process(newRawLockEvent(7))
		require.Nil(t, event)
		require.ErrorIs(t, err, core.ErrNonceReplayed)
		dbMock.AssertNotCalled(t, "AddProcessedNonce", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("drops event with missing fields before consuming nonce", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("IsNonceProcessed", testChainID, big.NewInt(5)).Return(false, nil)

		p := NewEventProcessor(testChainID, dbMock, hclog.NewNullLogger())

		raw := newRawLockEvent(5)
		delete(raw.Args, "recipient")

		event, err := p.Process(raw)
		require.Nil(t, event)
		require.ErrorIs(t, err, core.ErrFieldsMissing)
		dbMock.AssertNotCalled(t, "AddProcessedNonce", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("db read error is not a drop error", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("IsNonceProcessed", testChainID, big.NewInt(5)).Return(false, testError)

		p := NewEventProcessor(testChainID, dbMock, hclog.NewNullLogger())

		event, err := p.Process(newRawLockEvent(5))
		require.Nil(t, event)
		require.Error(t, err)
		require.False(t, core.IsEventDropError(err))
	})

	t.Run("accepts valid event and consumes nonce", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("IsNonceProcessed", testChainID, big.NewInt(5)).Return(false, nil)
		dbMock.On("AddProcessedNonce", testChainID, big.NewInt(5), mock.Anything).Return(nil)

		p := NewEventProcessor(testChainID, dbMock, hclog.NewNullLogger())

		event, err := p.Process(newRawLockEvent(5))
		require.NoError(t, err)
		require.NotNil(t, event)
		require.Equal(t, common.HexToAddress("0x2222222222222222222222222222222222222222"), event.Recipient)
		require.Equal(t, 0, big.NewInt(1000).Cmp(event.Amount))
		require.Equal(t, 0, big.NewInt(5).Cmp(event.SourceNonce))
		require.Equal(t, uint64(95), event.BlockNumber)
		dbMock.AssertCalled(t, "AddProcessedNonce", testChainID, big.NewInt(5), mock.Anything)
	})
}

func TestEventProcessorIdempotentRejection(t *testing.T) {
	testDir, err := os.MkdirTemp("", "processor-test")
	require.NoError(t, err)

	defer func() {
		os.RemoveAll(testDir)
	}()

	db, err := databaseaccess.NewDatabase(path.Join(testDir, "relayer.db"))
	require.NoError(t, err)

	defer db.Close()

	p := NewEventProcessor(testChainID, db, hclog.NewNullLogger())

	// two raw events with the same nonce yield exactly one processed event
	first, err := p.Process(newRawLockEvent(7))
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := p.Process(newRawLockEvent(7))
	require.Nil(t, second)
	require.ErrorIs(t, err, core.ErrNonceReplayed)

	record, err := db.GetProcessedNonceRecord(testChainID, big.NewInt(7))
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, uint64(95), record.BlockNumber)
}
