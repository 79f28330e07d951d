package eth

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hashicorp/go-hclog"
)

const (
	LockEventName    = "TokensLocked"
	UnlockMethodName = "unlockTokens"

	defaultSubmitSimulationTime = 2 * time.Second
)

// Minimal ABIs for the two bridge endpoints the relay touches. The source
// side only decodes TokensLocked and the destination side only packs
// unlockTokens, so full contract artifacts are not needed.
const sourceBridgeABIJSON = `[
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "internalType": "address", "name": "sender", "type": "address"},
			{"indexed": true, "internalType": "address", "name": "recipient", "type": "address"},
			{"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
			{"indexed": false, "internalType": "uint256", "name": "nonce", "type": "uint256"}
		],
		"name": "TokensLocked",
		"type": "event"
	}
]`

const destinationBridgeABIJSON = `[
	{
		"inputs": [
			{"internalType": "address", "name": "recipient", "type": "address"},
			{"internalType": "uint256", "name": "amount", "type": "uint256"},
			{"internalType": "uint256", "name": "sourceNonce", "type": "uint256"}
		],
		"name": "unlockTokens",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

var (
	sourceBridgeABI      = mustParseABI(sourceBridgeABIJSON)
	destinationBridgeABI = mustParseABI(destinationBridgeABIJSON)
)

func mustParseABI(rawJSON string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(rawJSON))
	if err != nil {
		panic(fmt.Errorf("invalid bridge abi: %w", err))
	}

	return parsed
}

type IBridgeContract interface {
	Address() common.Address
	FilterLockEvents(ctx context.Context, fromBlock, toBlock uint64) ([]*LockEventLog, error)
	UnlockTokens(ctx context.Context, recipient common.Address, amount, sourceNonce *big.Int) (common.Hash, error)
}

// BridgeContractImpl is a bound reference to a deployed bridge contract on
// one chain connection. The connection is a non-owning reference.
type BridgeContractImpl struct {
	connection  IChainConnection
	address     common.Address
	contractABI abi.ABI
	submitTime  time.Duration
	logger      hclog.Logger
}

var _ IBridgeContract = (*BridgeContractImpl)(nil)

func NewSourceBridgeContract(
	ctx context.Context, connection IChainConnection, address string, logger hclog.Logger,
) (*BridgeContractImpl, error) {
	return newBridgeContract(ctx, connection, address, sourceBridgeABI, logger)
}

func NewDestinationBridgeContract(
	ctx context.Context, connection IChainConnection, address string, logger hclog.Logger,
) (*BridgeContractImpl, error) {
	return newBridgeContract(ctx, connection, address, destinationBridgeABI, logger)
}

func newBridgeContract(
	ctx context.Context, connection IChainConnection, address string,
	contractABI abi.ABI, logger hclog.Logger,
) (*BridgeContractImpl, error) {
	if !connection.IsConnected(ctx) {
		return nil, fmt.Errorf("cannot bind contract %s on %s: %w",
			address, connection.ChainID(), ErrNotConnected)
	}

	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid contract address for %s: %s", connection.ChainID(), address)
	}

	return &BridgeContractImpl{
		connection:  connection,
		address:     common.HexToAddress(address),
		contractABI: contractABI,
		submitTime:  defaultSubmitSimulationTime,
		logger:      logger,
	}, nil
}

func (bc *BridgeContractImpl) Address() common.Address {
	return bc.address
}

// FilterLockEvents returns all TokensLocked occurrences in the inclusive
// range [fromBlock, toBlock], in the order the node returns them. An empty
// result is valid, a query error is not folded into it.
func (bc *BridgeContractImpl) FilterLockEvents(
	ctx context.Context, fromBlock, toBlock uint64,
) ([]*LockEventLog, error) {
	if fromBlock > toBlock {
		return nil, fmt.Errorf("invalid block range: from %d > to %d", fromBlock, toBlock)
	}

	client := bc.connection.Client()
	if client == nil {
		return nil, ErrNotConnected
	}

	event := bc.contractABI.Events[LockEventName]

	logs, err := client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{bc.address},
		Topics:    [][]common.Hash{{event.ID}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter %s logs on %s: %w",
			LockEventName, bc.connection.ChainID(), err)
	}

	events := make([]*LockEventLog, 0, len(logs))
	for _, log := range logs {
		events = append(events, bc.decodeLockEvent(event, log))
	}

	return events, nil
}

// decodeLockEvent never fails the whole range: a log with undecodable
// topics or data yields an args map with fields missing, which the
// processor rejects per event.
func (bc *BridgeContractImpl) decodeLockEvent(event abi.Event, log types.Log) *LockEventLog {
	args := make(map[string]interface{})

	indexed := make(abi.Arguments, 0, len(event.Inputs))

	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}

	if len(log.Topics) > 1 {
		if err := abi.ParseTopicsIntoMap(args, indexed, log.Topics[1:]); err != nil {
			bc.logger.Warn("Failed to decode indexed event fields",
				"event", LockEventName, "tx", log.TxHash, "err", err)
		}
	}

	if len(log.Data) > 0 {
		if err := bc.contractABI.UnpackIntoMap(args, LockEventName, log.Data); err != nil {
			bc.logger.Warn("Failed to decode event data",
				"event", LockEventName, "tx", log.TxHash, "err", err)
		}
	}

	return &LockEventLog{
		TxHash:      log.TxHash,
		BlockNumber: log.BlockNumber,
		Args:        args,
	}
}

// UnlockTokens packs the unlock call through the real contract ABI and then
// simulates the submission: it logs the intended action, waits a fixed
// delay and reports success with a deterministic pseudo tx hash.
//
// A production implementation replaces everything after Pack with nonce
// retrieval, gas estimation, signing, broadcast and receipt confirmation
// against the destination node.
func (bc *BridgeContractImpl) UnlockTokens(
	ctx context.Context, recipient common.Address, amount, sourceNonce *big.Int,
) (common.Hash, error) {
	if amount == nil || sourceNonce == nil {
		return common.Hash{}, fmt.Errorf("missing arguments for %s call", UnlockMethodName)
	}

	data, err := bc.contractABI.Pack(UnlockMethodName, recipient, amount, sourceNonce)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack %s call: %w", UnlockMethodName, err)
	}

	bc.logger.Info("Simulated transaction submission",
		"chain", bc.connection.ChainID(),
		"contract", bc.address,
		"function", UnlockMethodName,
		"recipient", recipient,
		"amount", amount,
		"sourceNonce", sourceNonce)

	select {
	case <-ctx.Done():
		return common.Hash{}, ctx.Err()
	case <-time.After(bc.submitTime):
	}

	return crypto.Keccak256Hash(bc.address.Bytes(), data), nil
}
