package relayer

import (
	"context"
	"fmt"
	"time"

	"github.com/Vikakfuse/star-craft/eth"
	"github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/Vikakfuse/star-craft/telemetry"
	"github.com/hashicorp/go-hclog"
)

// RelayerImpl drives the poll/validate/submit loop for one source to
// destination direction. It is the sole owner of the poll cursor: the
// cursor only moves forward, and only after a scanned range has been fully
// dispatched to the processor.
type RelayerImpl struct {
	config           *core.RelayerConfiguration
	sourceConnection eth.IChainConnection
	sourceContract   eth.IBridgeContract
	processor        core.EventProcessor
	submitter        core.TxSubmitter
	db               core.Database
	lastScannedBlock uint64
	logger           hclog.Logger
}

var _ core.Relayer = (*RelayerImpl)(nil)

func NewRelayer(
	config *core.RelayerConfiguration,
	sourceConnection eth.IChainConnection,
	sourceContract eth.IBridgeContract,
	processor core.EventProcessor,
	submitter core.TxSubmitter,
	db core.Database,
	startBlock uint64,
	logger hclog.Logger,
) *RelayerImpl {
	return &RelayerImpl{
		config:           config,
		sourceConnection: sourceConnection,
		sourceContract:   sourceContract,
		processor:        processor,
		submitter:        submitter,
		db:               db,
		lastScannedBlock: startBlock,
		logger:           logger,
	}
}

// Start loops until ctx is done. A failed iteration is logged and backed
// off, never fatal: cancellation through ctx is the only way out.
func (r *RelayerImpl) Start(ctx context.Context) {
	r.logger.Debug("Relayer started", "lastScannedBlock", r.lastScannedBlock)

	for {
		delay, err := r.execute(ctx)
		if err != nil {
			if core.IsConnectivityError(err) {
				r.logger.Warn("execute failed", "err", err)
			} else {
				r.logger.Error("execute failed", "err", err)
			}
		}

		select {
		case <-ctx.Done():
			r.logger.Debug("Relayer stopped")

			return
		case <-time.After(delay):
		}
	}
}

// execute runs one poll iteration and returns the delay before the next one.
func (r *RelayerImpl) execute(ctx context.Context) (time.Duration, error) {
	chainID := r.config.SourceChain.ChainID

	head, err := r.sourceConnection.LatestBlockNumber(ctx)
	if err != nil {
		// try to re-establish connectivity before the next attempt
		r.sourceConnection.Connect(ctx)

		return r.config.RPCRetryTime(), fmt.Errorf("could not fetch latest block from source chain: %w", err)
	}

	telemetry.UpdateRelayHeadBlock(chainID, head)

	if r.lastScannedBlock >= head {
		return r.config.IdleTime(), nil
	}

	fromBlock := r.lastScannedBlock + 1
	toBlock := head

	r.logger.Debug("Scanning for lock events", "fromBlock", fromBlock, "toBlock", toBlock)

	events, err := r.sourceContract.FilterLockEvents(ctx, fromBlock, toBlock)
	if err != nil {
		if core.IsConnectivityError(err) {
			r.sourceConnection.Connect(ctx)

			return r.config.RPCRetryTime(), fmt.Errorf("failed to read lock events: %w", err)
		}

		return r.config.ErrorBackoffTime(), fmt.Errorf("failed to read lock events: %w", err)
	}

	if len(events) > 0 {
		r.logger.Info("Found new lock events", "count", len(events), "fromBlock", fromBlock, "toBlock", toBlock)
		telemetry.UpdateRelayEventsReceivedCounter(chainID, len(events))
	}

	for _, raw := range events {
		event, err := r.processor.Process(raw)
		if err != nil {
			if core.IsEventDropError(err) {
				continue
			}

			// nonce store failure: keep the cursor so the range is rescanned
			return r.config.ErrorBackoffTime(), fmt.Errorf("failed to process event %s: %w", raw.TxHash, err)
		}

		// the nonce stays consumed no matter the outcome and the cursor
		// still advances past this block, accepting under-delivery over
		// double-unlock
		success := r.submitter.Submit(ctx, event)

		r.logger.Info("Unlock submission finished",
			"sourceNonce", event.SourceNonce, "tx", event.TxHash, "success", success)
	}

	if err := r.db.UpdateLastScannedBlock(chainID, toBlock); err != nil {
		return r.config.ErrorBackoffTime(), fmt.Errorf("failed to persist last scanned block: %w", err)
	}

	r.lastScannedBlock = toBlock
	telemetry.UpdateRelayLastScannedBlock(chainID, toBlock)

	return r.config.PullTime(), nil
}
