package cligenerateconfigs

import (
	"fmt"
	"path/filepath"

	loggerInfra "github.com/Ethernal-Tech/cardano-infrastructure/logger"
	apiCore "github.com/Vikakfuse/star-craft/api/core"
	"github.com/Vikakfuse/star-craft/common"
	relayerCore "github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/Vikakfuse/star-craft/telemetry"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const (
	sourceChainIDFlag       = "source-chain-id"
	sourceNodeURLFlag       = "source-node-url"
	sourceBridgeAddrFlag    = "source-bridge-addr"
	sourceStartBlockFlag    = "source-start-block"
	destChainIDFlag         = "destination-chain-id"
	destNodeURLFlag         = "destination-node-url"
	destBridgeAddrFlag      = "destination-bridge-addr"
	dbsPathFlag             = "dbs-path"
	logsPathFlag            = "logs-path"
	apiPortFlag             = "api-port"
	apiKeysFlag             = "api-keys"
	telemetryPrometheusFlag = "telemetry-prometheus-addr"
	outputDirFlag           = "output-dir"
	outputFileNameFlag      = "output-file-name"

	sourceChainIDFlagDesc       = "source chain id"
	sourceNodeURLFlagDesc       = "source chain rpc node url"
	sourceBridgeAddrFlagDesc    = "source chain bridge contract address"
	sourceStartBlockFlagDesc    = "block number to start scanning from, zero means lagged head"
	destChainIDFlagDesc         = "destination chain id"
	destNodeURLFlagDesc         = "destination chain rpc node url"
	destBridgeAddrFlagDesc      = "destination chain bridge contract address"
	dbsPathFlagDesc             = "path to relayer database directory"
	logsPathFlagDesc            = "path to log files directory"
	apiPortFlagDesc             = "port at which the ops api runs, zero means disabled"
	apiKeysFlagDesc             = "api keys for the ops api"
	telemetryPrometheusFlagDesc = "prometheus listen address, empty means disabled"
	outputDirFlagDesc           = "config output directory"
	outputFileNameFlagDesc      = "config output file name"

	defaultSourceChainID  = "sepolia"
	defaultDestChainID    = "mumbai"
	defaultDbsPath        = "./db"
	defaultLogsPath       = "./logs"
	defaultOutputDir      = "./"
	defaultOutputFileName = "relayer_config.json"
)

type generateConfigsParams struct {
	sourceChainID    string
	sourceNodeURL    string
	sourceBridgeAddr string
	sourceStartBlock uint64
	destChainID      string
	destNodeURL      string
	destBridgeAddr   string

	dbsPath  string
	logsPath string

	apiPort uint32
	apiKeys []string

	telemetryPrometheusAddr string

	outputDir      string
	outputFileName string
}

func (p *generateConfigsParams) validateFlags() error {
	if p.sourceNodeURL == "" || !common.IsValidURL(p.sourceNodeURL) {
		return fmt.Errorf("missing or invalid: --%s", sourceNodeURLFlag)
	}

	if p.destNodeURL == "" || !common.IsValidURL(p.destNodeURL) {
		return fmt.Errorf("missing or invalid: --%s", destNodeURLFlag)
	}

	if !ethCommon.IsHexAddress(p.sourceBridgeAddr) {
		return fmt.Errorf("missing or invalid: --%s", sourceBridgeAddrFlag)
	}

	if !ethCommon.IsHexAddress(p.destBridgeAddr) {
		return fmt.Errorf("missing or invalid: --%s", destBridgeAddrFlag)
	}

	if p.apiPort != 0 && len(p.apiKeys) == 0 {
		return fmt.Errorf("specify at least one --%s when the api is enabled", apiKeysFlag)
	}

	return nil
}

func (p *generateConfigsParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.sourceChainID, sourceChainIDFlag, defaultSourceChainID, sourceChainIDFlagDesc)
	cmd.Flags().StringVar(&p.sourceNodeURL, sourceNodeURLFlag, "", sourceNodeURLFlagDesc)
	cmd.Flags().StringVar(&p.sourceBridgeAddr, sourceBridgeAddrFlag, "", sourceBridgeAddrFlagDesc)
	cmd.Flags().Uint64Var(&p.sourceStartBlock, sourceStartBlockFlag, 0, sourceStartBlockFlagDesc)
	cmd.Flags().StringVar(&p.destChainID, destChainIDFlag, defaultDestChainID, destChainIDFlagDesc)
	cmd.Flags().StringVar(&p.destNodeURL, destNodeURLFlag, "", destNodeURLFlagDesc)
	cmd.Flags().StringVar(&p.destBridgeAddr, destBridgeAddrFlag, "", destBridgeAddrFlagDesc)
	cmd.Flags().StringVar(&p.dbsPath, dbsPathFlag, defaultDbsPath, dbsPathFlagDesc)
	cmd.Flags().StringVar(&p.logsPath, logsPathFlag, defaultLogsPath, logsPathFlagDesc)
	cmd.Flags().Uint32Var(&p.apiPort, apiPortFlag, 0, apiPortFlagDesc)
	cmd.Flags().StringSliceVar(&p.apiKeys, apiKeysFlag, nil, apiKeysFlagDesc)
	cmd.Flags().StringVar(&p.telemetryPrometheusAddr, telemetryPrometheusFlag, "", telemetryPrometheusFlagDesc)
	cmd.Flags().StringVar(&p.outputDir, outputDirFlag, defaultOutputDir, outputDirFlagDesc)
	cmd.Flags().StringVar(&p.outputFileName, outputFileNameFlag, defaultOutputFileName, outputFileNameFlagDesc)
}

func (p *generateConfigsParams) Execute() (common.ICommandResult, error) {
	config := &relayerCore.RelayerManagerConfiguration{
		SourceChain: relayerCore.ChainConfig{
			ChainID:              p.sourceChainID,
			NodeURL:              p.sourceNodeURL,
			SmartContractAddress: p.sourceBridgeAddr,
			StartBlockNumber:     p.sourceStartBlock,
		},
		DestinationChain: relayerCore.ChainConfig{
			ChainID:              p.destChainID,
			NodeURL:              p.destNodeURL,
			SmartContractAddress: p.destBridgeAddr,
		},
		DbsPath: p.dbsPath,
		APIConfig: apiCore.APIConfig{
			Port:           p.apiPort,
			PathPrefix:     "api",
			AllowedHeaders: []string{"Content-Type"},
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
			APIKeyHeader:   "x-api-key",
			APIKeys:        p.apiKeys,
		},
		Telemetry: telemetry.TelemetryConfig{
			PrometheusAddr: p.telemetryPrometheusAddr,
		},
		Logger: loggerInfra.LoggerConfig{
			LogFilePath: filepath.Join(p.logsPath, "relayer.log"),
			LogLevel:    hclog.Debug,
			AppendFile:  true,
		},
	}

	config.FillDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := common.CreateDirectoryIfNotExists(p.outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	configPath := filepath.Join(p.outputDir, p.outputFileName)
	if err := common.SaveJson(config, configPath, true); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &CmdResult{configPath: configPath}, nil
}
