package relayer_manager

import (
	"context"
	"errors"
	"testing"

	"github.com/Vikakfuse/star-craft/eth"
	"github.com/Vikakfuse/star-craft/relayer/core"
	databaseaccess "github.com/Vikakfuse/star-craft/relayer/database_access"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestNewRelayerManagerConfigValidation(t *testing.T) {
	t.Run("missing node url", func(t *testing.T) {
		config := &core.RelayerManagerConfiguration{
			SourceChain: core.ChainConfig{
				ChainID:              "sepolia",
				SmartContractAddress: "0x816402271eE6D9078Fc8Cb537aDBDD58219485BA",
			},
			DestinationChain: core.ChainConfig{
				ChainID:              "mumbai",
				NodeURL:              "https://rpc.dest.example",
				SmartContractAddress: "0x816402271eE6D9078Fc8Cb537aDBDD58219485BA",
			},
		}

		_, err := NewRelayerManager(config, hclog.NewNullLogger())
		require.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("malformed contract address", func(t *testing.T) {
		config := &core.RelayerManagerConfiguration{
			SourceChain: core.ChainConfig{
				ChainID:              "sepolia",
				NodeURL:              "https://rpc.source.example",
				SmartContractAddress: "not-an-address",
			},
			DestinationChain: core.ChainConfig{
				ChainID:              "mumbai",
				NodeURL:              "https://rpc.dest.example",
				SmartContractAddress: "0x816402271eE6D9078Fc8Cb537aDBDD58219485BA",
			},
		}

		_, err := NewRelayerManager(config, hclog.NewNullLogger())
		require.ErrorContains(t, err, "invalid configuration")
	})
}

func TestResolveStartBlock(t *testing.T) {
	ctx := context.Background()
	chainConfig := core.ChainConfig{
		ChainID:       "sepolia",
		StartBlockLag: 10,
	}

	t.Run("stored cursor wins", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetLastScannedBlock", "sepolia").Return(uint64(120), true, nil)

		connectionMock := &eth.ChainConnectionMock{}

		withStart := chainConfig
		withStart.StartBlockNumber = 50

		block, err := resolveStartBlock(ctx, withStart, connectionMock, dbMock, hclog.NewNullLogger())
		require.NoError(t, err)
		require.Equal(t, uint64(120), block)
	})

	t.Run("explicit start block", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetLastScannedBlock", "sepolia").Return(uint64(0), false, nil)

		withStart := chainConfig
		withStart.StartBlockNumber = 50

		block, err := resolveStartBlock(ctx, withStart, &eth.ChainConnectionMock{}, dbMock, hclog.NewNullLogger())
		require.NoError(t, err)
		require.Equal(t, uint64(50), block)
	})

	t.Run("lagged head", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetLastScannedBlock", "sepolia").Return(uint64(0), false, nil)

		connectionMock := &eth.ChainConnectionMock{}
		connectionMock.On("LatestBlockNumber", ctx).Return(uint64(100), nil)

		block, err := resolveStartBlock(ctx, chainConfig, connectionMock, dbMock, hclog.NewNullLogger())
		require.NoError(t, err)
		require.Equal(t, uint64(90), block)
	})

	t.Run("head below lag clamps to zero", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetLastScannedBlock", "sepolia").Return(uint64(0), false, nil)

		connectionMock := &eth.ChainConnectionMock{}
		connectionMock.On("LatestBlockNumber", ctx).Return(uint64(5), nil)

		block, err := resolveStartBlock(ctx, chainConfig, connectionMock, dbMock, hclog.NewNullLogger())
		require.NoError(t, err)
		require.Equal(t, uint64(0), block)
	})

	t.Run("head query failure is terminal", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetLastScannedBlock", "sepolia").Return(uint64(0), false, nil)

		connectionMock := &eth.ChainConnectionMock{}
		connectionMock.On("LatestBlockNumber", ctx).Return(uint64(0), errors.New("test err"))

		_, err := resolveStartBlock(ctx, chainConfig, connectionMock, dbMock, hclog.NewNullLogger())
		require.Error(t, err)
	})
}
