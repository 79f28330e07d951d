package core

import (
	"fmt"
	"time"

	"github.com/Ethernal-Tech/cardano-infrastructure/logger"
	apiCore "github.com/Vikakfuse/star-craft/api/core"
	"github.com/Vikakfuse/star-craft/common"
	"github.com/Vikakfuse/star-craft/telemetry"
	ethCommon "github.com/ethereum/go-ethereum/common"
)

const (
	defaultPullTimeMilis         = 15_000
	defaultIdleTimeMilis         = 10_000
	defaultRPCRetryTimeMilis     = 30_000
	defaultErrorBackoffTimeMilis = 60_000
	defaultStartBlockLag         = 10
)

type ChainConfig struct {
	ChainID              string `json:"chainId"`
	NodeURL              string `json:"nodeUrl"`
	SmartContractAddress string `json:"scAddress"`
	// StartBlockNumber zero means head minus StartBlockLag at startup;
	// a stored cursor always wins over both
	StartBlockNumber uint64 `json:"startBlockNumber"`
	StartBlockLag    uint64 `json:"startBlockLag"`
}

type RelayerConfiguration struct {
	SourceChain           ChainConfig `json:"sourceChain"`
	DestinationChain      ChainConfig `json:"destinationChain"`
	PullTimeMilis         uint64      `json:"pullTime"`
	IdleTimeMilis         uint64      `json:"idleTime"`
	RPCRetryTimeMilis     uint64      `json:"rpcRetryTime"`
	ErrorBackoffTimeMilis uint64      `json:"errorBackoffTime"`
}

type RelayerManagerConfiguration struct {
	SourceChain           ChainConfig               `json:"sourceChain"`
	DestinationChain      ChainConfig               `json:"destinationChain"`
	PullTimeMilis         uint64                    `json:"pullTime"`
	IdleTimeMilis         uint64                    `json:"idleTime"`
	RPCRetryTimeMilis     uint64                    `json:"rpcRetryTime"`
	ErrorBackoffTimeMilis uint64                    `json:"errorBackoffTime"`
	DbsPath               string                    `json:"dbsPath"`
	APIConfig             apiCore.APIConfig         `json:"api"`
	Telemetry             telemetry.TelemetryConfig `json:"telemetry"`
	Logger                logger.LoggerConfig       `json:"logger"`
}

func (config *RelayerConfiguration) PullTime() time.Duration {
	return time.Millisecond * time.Duration(config.PullTimeMilis)
}

func (config *RelayerConfiguration) IdleTime() time.Duration {
	return time.Millisecond * time.Duration(config.IdleTimeMilis)
}

func (config *RelayerConfiguration) RPCRetryTime() time.Duration {
	return time.Millisecond * time.Duration(config.RPCRetryTimeMilis)
}

func (config *RelayerConfiguration) ErrorBackoffTime() time.Duration {
	return time.Millisecond * time.Duration(config.ErrorBackoffTimeMilis)
}

func (config *RelayerManagerConfiguration) FillDefaults() {
	if config.PullTimeMilis == 0 {
		config.PullTimeMilis = defaultPullTimeMilis
	}

	if config.IdleTimeMilis == 0 {
		config.IdleTimeMilis = defaultIdleTimeMilis
	}

	if config.RPCRetryTimeMilis == 0 {
		config.RPCRetryTimeMilis = defaultRPCRetryTimeMilis
	}

	if config.ErrorBackoffTimeMilis == 0 {
		config.ErrorBackoffTimeMilis = defaultErrorBackoffTimeMilis
	}

	if config.SourceChain.StartBlockLag == 0 {
		config.SourceChain.StartBlockLag = defaultStartBlockLag
	}
}

// Validate checks the startup-fatal part of the configuration surface.
func (config *RelayerManagerConfiguration) Validate() error {
	for _, chain := range []ChainConfig{config.SourceChain, config.DestinationChain} {
		if chain.NodeURL == "" || !common.IsValidURL(chain.NodeURL) {
			return fmt.Errorf("missing or invalid node url for chain %s: %s", chain.ChainID, chain.NodeURL)
		}

		if !ethCommon.IsHexAddress(chain.SmartContractAddress) {
			return fmt.Errorf("missing or invalid contract address for chain %s: %s",
				chain.ChainID, chain.SmartContractAddress)
		}
	}

	return nil
}

func (config *RelayerManagerConfiguration) RelayerConfiguration() *RelayerConfiguration {
	return &RelayerConfiguration{
		SourceChain:           config.SourceChain,
		DestinationChain:      config.DestinationChain,
		PullTimeMilis:         config.PullTimeMilis,
		IdleTimeMilis:         config.IdleTimeMilis,
		RPCRetryTimeMilis:     config.RPCRetryTimeMilis,
		ErrorBackoffTimeMilis: config.ErrorBackoffTimeMilis,
	}
}
