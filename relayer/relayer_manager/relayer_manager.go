package relayer_manager

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Vikakfuse/star-craft/api"
	apiCore "github.com/Vikakfuse/star-craft/api/core"
	"github.com/Vikakfuse/star-craft/api/controllers"
	"github.com/Vikakfuse/star-craft/eth"
	"github.com/Vikakfuse/star-craft/relayer/core"
	databaseaccess "github.com/Vikakfuse/star-craft/relayer/database_access"
	"github.com/Vikakfuse/star-craft/relayer/processor"
	"github.com/Vikakfuse/star-craft/relayer/relayer"
	"github.com/Vikakfuse/star-craft/relayer/submitter"
	"github.com/Vikakfuse/star-craft/telemetry"
	"github.com/hashicorp/go-hclog"
)

// RelayerManagerImpl assembles and owns the whole relay pipeline: both chain
// connections, the durable store, the relayer goroutine, the ops api and
// telemetry. Construction is the startup-fatal phase, everything after
// Start() recovers through backoff instead of exiting.
type RelayerManagerImpl struct {
	config    *core.RelayerManagerConfiguration
	relayer   core.Relayer
	db        core.Database
	api       apiCore.API
	telemetry *telemetry.Telemetry
	cancelCtx context.CancelFunc
	logger    hclog.Logger
}

var _ core.RelayerManager = (*RelayerManagerImpl)(nil)

func NewRelayerManager(
	config *core.RelayerManagerConfiguration,
	logger hclog.Logger,
) (*RelayerManagerImpl, error) {
	config.FillDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	sourceConnection := eth.NewChainConnection(
		config.SourceChain.NodeURL, config.SourceChain.ChainID,
		logger.Named(strings.ToUpper(config.SourceChain.ChainID)))
	sourceConnection.Connect(ctx)

	destinationConnection := eth.NewChainConnection(
		config.DestinationChain.NodeURL, config.DestinationChain.ChainID,
		logger.Named(strings.ToUpper(config.DestinationChain.ChainID)))
	destinationConnection.Connect(ctx)

	sourceContract, err := eth.NewSourceBridgeContract(
		ctx, sourceConnection, config.SourceChain.SmartContractAddress, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to bind source bridge contract: %w", err)
	}

	destinationContract, err := eth.NewDestinationBridgeContract(
		ctx, destinationConnection, config.DestinationChain.SmartContractAddress, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to bind destination bridge contract: %w", err)
	}

	db, err := databaseaccess.NewDatabase(
		filepath.Join(config.DbsPath, config.SourceChain.ChainID+".db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open relayer database: %w", err)
	}

	startBlock, err := resolveStartBlock(ctx, config.SourceChain, sourceConnection, db, logger)
	if err != nil {
		db.Close()

		return nil, err
	}

	relayerLogger := logger.Named("RELAYER")

	r := relayer.NewRelayer(
		config.RelayerConfiguration(),
		sourceConnection,
		sourceContract,
		processor.NewEventProcessor(config.SourceChain.ChainID, db, relayerLogger),
		submitter.NewTxSubmitter(destinationConnection, destinationContract, relayerLogger),
		db,
		startBlock,
		relayerLogger,
	)

	return &RelayerManagerImpl{
		config:    config,
		relayer:   r,
		db:        db,
		telemetry: telemetry.NewTelemetry(config.Telemetry, logger.Named("TELEMETRY")),
		logger:    logger,
	}, nil
}

func (rm *RelayerManagerImpl) Start() error {
	ctx, cancelCtx := context.WithCancel(context.Background())
	rm.cancelCtx = cancelCtx

	if err := rm.telemetry.Start(); err != nil {
		cancelCtx()

		return fmt.Errorf("failed to start telemetry: %w", err)
	}

	if rm.config.APIConfig.Port != 0 {
		relayStateController := controllers.NewRelayStateController(rm.db, rm.logger.Named("API"))

		apiObj, err := api.NewAPI(ctx, rm.config.APIConfig,
			[]apiCore.APIController{relayStateController}, rm.logger.Named("API"))
		if err != nil {
			cancelCtx()

			return fmt.Errorf("failed to create api: %w", err)
		}

		rm.api = apiObj

		go rm.api.Start()
	}

	go rm.relayer.Start(ctx)

	return nil
}

func (rm *RelayerManagerImpl) Stop() error {
	rm.cancelCtx()

	var stopErrors []error

	if rm.api != nil {
		if err := rm.api.Dispose(); err != nil {
			stopErrors = append(stopErrors, err)
		}
	}

	if err := rm.telemetry.Close(context.Background()); err != nil {
		stopErrors = append(stopErrors, err)
	}

	if err := rm.db.Close(); err != nil {
		stopErrors = append(stopErrors, err)
	}

	for _, err := range stopErrors {
		rm.logger.Error("error while stopping relayer manager", "err", err)
	}

	if len(stopErrors) > 0 {
		return fmt.Errorf("%d errors while stopping relayer manager", len(stopErrors))
	}

	return nil
}

// resolveStartBlock picks the first block the relayer has NOT yet scanned
// minus one: a stored cursor always wins, then an explicit configured start,
// then the chain head minus the configured lag.
func resolveStartBlock(
	ctx context.Context, chainConfig core.ChainConfig,
	connection eth.IChainConnection, db core.Database, logger hclog.Logger,
) (uint64, error) {
	storedBlock, exists, err := db.GetLastScannedBlock(chainConfig.ChainID)
	if err != nil {
		return 0, fmt.Errorf("failed to read stored cursor: %w", err)
	}

	if exists {
		logger.Info("Resuming from stored cursor", "chain", chainConfig.ChainID, "block", storedBlock)

		return storedBlock, nil
	}

	if chainConfig.StartBlockNumber != 0 {
		logger.Info("Starting from configured block",
			"chain", chainConfig.ChainID, "block", chainConfig.StartBlockNumber)

		return chainConfig.StartBlockNumber, nil
	}

	head, err := connection.LatestBlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch head for start block: %w", err)
	}

	startBlock := uint64(0)
	if head > chainConfig.StartBlockLag {
		startBlock = head - chainConfig.StartBlockLag
	}

	logger.Info("Starting from lagged head",
		"chain", chainConfig.ChainID, "head", head, "block", startBlock)

	return startBlock, nil
}
