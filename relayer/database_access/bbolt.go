package databaseaccess

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/fxamacker/cbor/v2"
	"go.etcd.io/bbolt"
)

var (
	processedNoncesBucket  = []byte("processedNonces")
	lastScannedBlockBucket = []byte("lastScannedBlock")
)

// BBoltDatabase holds the durability-sensitive relay state: the consumed
// nonce set and the poll cursor. Keeping both on disk closes the replay
// window a process restart would otherwise reopen.
type BBoltDatabase struct {
	db *bbolt.DB
}

var _ core.Database = (*BBoltDatabase)(nil)

func (bd *BBoltDatabase) Init(filePath string) error {
	db, err := bbolt.Open(filePath, 0660, nil)
	if err != nil {
		return fmt.Errorf("could not open db: %w", err)
	}

	bd.db = db

	return db.Update(func(tx *bbolt.Tx) error {
		for _, bn := range [][]byte{processedNoncesBucket, lastScannedBlockBucket} {
			_, err := tx.CreateBucketIfNotExists(bn)
			if err != nil {
				return fmt.Errorf("could not bucket: %s, err: %w", string(bn), err)
			}
		}

		return nil
	})
}

func (bd *BBoltDatabase) Close() error {
	return bd.db.Close()
}

func (bd *BBoltDatabase) AddProcessedNonce(
	chainID string, nonce *big.Int, record *core.ProcessedEventRecord,
) error {
	return bd.db.Update(func(tx *bbolt.Tx) error {
		key, err := nonceKey(chainID, nonce)
		if err != nil {
			return err
		}

		bytes, err := cbor.Marshal(record)
		if err != nil {
			return fmt.Errorf("could not marshal processed event record: %w", err)
		}

		if err := tx.Bucket(processedNoncesBucket).Put(key, bytes); err != nil {
			return fmt.Errorf("processed nonce write error: %w", err)
		}

		return nil
	})
}

func (bd *BBoltDatabase) IsNonceProcessed(chainID string, nonce *big.Int) (bool, error) {
	var result bool

	err := bd.db.View(func(tx *bbolt.Tx) error {
		key, err := nonceKey(chainID, nonce)
		if err != nil {
			return err
		}

		result = tx.Bucket(processedNoncesBucket).Get(key) != nil

		return nil
	})
	if err != nil {
		return false, err
	}

	return result, nil
}

func (bd *BBoltDatabase) GetProcessedNonceRecord(
	chainID string, nonce *big.Int,
) (*core.ProcessedEventRecord, error) {
	var result *core.ProcessedEventRecord

	err := bd.db.View(func(tx *bbolt.Tx) error {
		key, err := nonceKey(chainID, nonce)
		if err != nil {
			return err
		}

		bytes := tx.Bucket(processedNoncesBucket).Get(key)
		if bytes == nil {
			return nil
		}

		result = &core.ProcessedEventRecord{}
		if err := cbor.Unmarshal(bytes, result); err != nil {
			return fmt.Errorf("could not unmarshal processed event record: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (bd *BBoltDatabase) UpdateLastScannedBlock(chainID string, blockNumber uint64) error {
	return bd.db.Update(func(tx *bbolt.Tx) error {
		bytes := make([]byte, 8)
		binary.BigEndian.PutUint64(bytes, blockNumber)

		if err := tx.Bucket(lastScannedBlockBucket).Put([]byte(chainID), bytes); err != nil {
			return fmt.Errorf("last scanned block write error: %w", err)
		}

		return nil
	})
}

func (bd *BBoltDatabase) GetLastScannedBlock(chainID string) (uint64, bool, error) {
	var (
		result uint64
		exists bool
	)

	err := bd.db.View(func(tx *bbolt.Tx) error {
		bytes := tx.Bucket(lastScannedBlockBucket).Get([]byte(chainID))
		if bytes == nil {
			return nil
		}

		if len(bytes) != 8 {
			return fmt.Errorf("corrupted last scanned block value for chain %s", chainID)
		}

		result = binary.BigEndian.Uint64(bytes)
		exists = true

		return nil
	})
	if err != nil {
		return 0, false, err
	}

	return result, exists, nil
}

func nonceKey(chainID string, nonce *big.Int) ([]byte, error) {
	nonceBytes, err := nonce.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("could not marshal nonce: %w", err)
	}

	return append([]byte(chainID+"_"), nonceBytes...), nil
}
