package databaseaccess

import (
	"math/big"
	"os"
	"path"
	"testing"

	"github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/stretchr/testify/require"
)

func TestBoltDatabase(t *testing.T) {
	testDir, err := os.MkdirTemp("", "boltdb-test")
	require.NoError(t, err)

	defer func() {
		os.RemoveAll(testDir)
		os.Remove(testDir)
	}()

	filePath := path.Join(testDir, "temp_test.db")

	dbCleanup := func() {
		if _, err := os.Stat(filePath); err == nil {
			os.Remove(filePath)
		}
	}

	record := &core.ProcessedEventRecord{
		TxHash:      "0x00ab",
		BlockNumber: 95,
		Recipient:   "0x2222222222222222222222222222222222222222",
		Amount:      "1000",
	}

	t.Run("Init", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init(filePath)
		require.NoError(t, err)
	})

	t.Run("Init should fail", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init("")
		require.Error(t, err)
	})

	t.Run("Close", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init(filePath)
		require.NoError(t, err)

		err = db.Close()
		require.NoError(t, err)
	})

	t.Run("AddProcessedNonce", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init(filePath)
		require.NoError(t, err)

		err = db.AddProcessedNonce("sepolia", big.NewInt(5), record)
		require.NoError(t, err)
		err = db.AddProcessedNonce("sepolia", big.NewInt(7), record)
		require.NoError(t, err)
	})

	t.Run("IsNonceProcessed", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init(filePath)
		require.NoError(t, err)

		processed, err := db.IsNonceProcessed("sepolia", big.NewInt(5))
		require.NoError(t, err)
		require.False(t, processed)

		err = db.AddProcessedNonce("sepolia", big.NewInt(5), record)
		require.NoError(t, err)

		processed, err = db.IsNonceProcessed("sepolia", big.NewInt(5))
		require.NoError(t, err)
		require.True(t, processed)

		// same nonce on another chain is unrelated
		processed, err = db.IsNonceProcessed("mumbai", big.NewInt(5))
		require.NoError(t, err)
		require.False(t, processed)
	})

	t.Run("GetProcessedNonceRecord", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init(filePath)
		require.NoError(t, err)

		res, err := db.GetProcessedNonceRecord("sepolia", big.NewInt(5))
		require.NoError(t, err)
		require.Nil(t, res)

		err = db.AddProcessedNonce("sepolia", big.NewInt(5), record)
		require.NoError(t, err)

		res, err = db.GetProcessedNonceRecord("sepolia", big.NewInt(5))
		require.NoError(t, err)
		require.NotNil(t, res)
		require.Equal(t, record, res)
	})

	t.Run("LastScannedBlock", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init(filePath)
		require.NoError(t, err)

		_, exists, err := db.GetLastScannedBlock("sepolia")
		require.NoError(t, err)
		require.False(t, exists)

		err = db.UpdateLastScannedBlock("sepolia", 100)
		require.NoError(t, err)

		block, exists, err := db.GetLastScannedBlock("sepolia")
		require.NoError(t, err)
		require.True(t, exists)
		require.Equal(t, uint64(100), block)

		err = db.UpdateLastScannedBlock("sepolia", 110)
		require.NoError(t, err)

		block, exists, err = db.GetLastScannedBlock("sepolia")
		require.NoError(t, err)
		require.True(t, exists)
		require.Equal(t, uint64(110), block)
	})

	t.Run("state survives reopen", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		require.NoError(t, db.Init(filePath))
		require.NoError(t, db.AddProcessedNonce("sepolia", big.NewInt(9), record))
		require.NoError(t, db.UpdateLastScannedBlock("sepolia", 42))
		require.NoError(t, db.Close())

		reopened := &BBoltDatabase{}
		require.NoError(t, reopened.Init(filePath))

		defer reopened.Close()

		processed, err := reopened.IsNonceProcessed("sepolia", big.NewInt(9))
		require.NoError(t, err)
		require.True(t, processed)

		block, exists, err := reopened.GetLastScannedBlock("sepolia")
		require.NoError(t, err)
		require.True(t, exists)
		require.Equal(t, uint64(42), block)
	})
}
