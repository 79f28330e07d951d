package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/mock"
)

type ChainConnectionMock struct {
	mock.Mock
}

var _ IChainConnection = (*ChainConnectionMock)(nil)

func (m *ChainConnectionMock) Connect(ctx context.Context) {
	m.Called(ctx)
}

func (m *ChainConnectionMock) IsConnected(ctx context.Context) bool {
	args := m.Called(ctx)
	arg0, _ := args.Get(0).(bool)

	return arg0
}

func (m *ChainConnectionMock) LatestBlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	arg0, _ := args.Get(0).(uint64)

	return arg0, args.Error(1)
}

func (m *ChainConnectionMock) Client() *ethclient.Client {
	args := m.Called()

	if args.Get(0) == nil {
		return nil
	}

	arg0, _ := args.Get(0).(*ethclient.Client)

	return arg0
}

func (m *ChainConnectionMock) ChainID() string {
	args := m.Called()
	arg0, _ := args.Get(0).(string)

	return arg0
}

type BridgeContractMock struct {
	mock.Mock
}

var _ IBridgeContract = (*BridgeContractMock)(nil)

func (m *BridgeContractMock) Address() common.Address {
	args := m.Called()
	arg0, _ := args.Get(0).(common.Address)

	return arg0
}

func (m *BridgeContractMock) FilterLockEvents(
	ctx context.Context, fromBlock, toBlock uint64,
) ([]*LockEventLog, error) {
	args := m.Called(ctx, fromBlock, toBlock)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).([]*LockEventLog)

	return arg0, args.Error(1)
}

func (m *BridgeContractMock) UnlockTokens(
	ctx context.Context, recipient common.Address, amount, sourceNonce *big.Int,
) (common.Hash, error) {
	args := m.Called(ctx, recipient, amount, sourceNonce)
	arg0, _ := args.Get(0).(common.Hash)

	return arg0, args.Error(1)
}
