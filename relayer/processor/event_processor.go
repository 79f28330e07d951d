package processor

import (
	"fmt"

	"github.com/Vikakfuse/star-craft/eth"
	"github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/Vikakfuse/star-craft/telemetry"
	"github.com/hashicorp/go-hclog"
)

// EventProcessorImpl validates raw lock events and owns the consumed nonce
// set. A nonce is consumed the moment its event passes validation, before
// any submission attempt: duplicates are dropped even when the original
// submission later failed. This is a deliberate at-most-once guarantee.
type EventProcessorImpl struct {
	chainID string
	db      core.Database
	logger  hclog.Logger
}

var _ core.EventProcessor = (*EventProcessorImpl)(nil)

func NewEventProcessor(chainID string, db core.Database, logger hclog.Logger) *EventProcessorImpl {
	return &EventProcessorImpl{
		chainID: chainID,
		db:      db,
		logger:  logger,
	}
}

func (p *EventProcessorImpl) Process(raw *eth.LockEventLog) (*core.ProcessedEvent, error) {
	nonce, ok := raw.Nonce()
	if !ok {
		p.logger.Warn("Skipping event with no nonce", "tx", raw.TxHash)
		telemetry.UpdateRelayEventsInvalidCounter(p.chainID, 1)

		return nil, core.ErrNonceMissing
	}

	processed, err := p.db.IsNonceProcessed(p.chainID, nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to check nonce %s in db: %w", nonce, err)
	}

	if processed {
		p.logger.Warn("Replay detected. Skipping", "nonce", nonce, "tx", raw.TxHash)
		telemetry.UpdateRelayEventsReplayedCounter(p.chainID, 1)

		return nil, core.ErrNonceReplayed
	}

	recipient, okRecipient := raw.Recipient()
	amount, okAmount := raw.Amount()

	if !okRecipient || !okAmount {
		p.logger.Error("Event log is missing required fields", "tx", raw.TxHash, "args", raw.Args)
		telemetry.UpdateRelayEventsInvalidCounter(p.chainID, 1)

		return nil, core.ErrFieldsMissing
	}

	event := &core.ProcessedEvent{
		Recipient:   recipient,
		Amount:      amount,
		SourceNonce: nonce,
		TxHash:      raw.TxHash,
		BlockNumber: raw.BlockNumber,
	}

	// consume the nonce at validation time, not at submission time
	if err := p.db.AddProcessedNonce(p.chainID, nonce, core.NewProcessedEventRecord(event)); err != nil {
		return nil, fmt.Errorf("failed to insert nonce %s into db: %w", nonce, err)
	}

	p.logger.Info("Successfully validated and processed event", "nonce", nonce, "tx", raw.TxHash)

	return event, nil
}
