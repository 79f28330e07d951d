package submitter

import (
	"context"

	"github.com/Vikakfuse/star-craft/eth"
	"github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/Vikakfuse/star-craft/telemetry"
	"github.com/hashicorp/go-hclog"
)

// TxSubmitterImpl turns a processed lock event into an unlock invocation on
// the destination chain. All failure is reported through the boolean result
// plus a logged diagnostic, nothing propagates past this boundary. Retry is
// the orchestrator's concern, not handled here.
type TxSubmitterImpl struct {
	connection eth.IChainConnection
	contract   eth.IBridgeContract
	logger     hclog.Logger
}

var _ core.TxSubmitter = (*TxSubmitterImpl)(nil)

func NewTxSubmitter(
	connection eth.IChainConnection, contract eth.IBridgeContract, logger hclog.Logger,
) *TxSubmitterImpl {
	return &TxSubmitterImpl{
		connection: connection,
		contract:   contract,
		logger:     logger,
	}
}

func (s *TxSubmitterImpl) Submit(ctx context.Context, event *core.ProcessedEvent) bool {
	chainID := s.connection.ChainID()

	if !s.connection.IsConnected(ctx) {
		s.logger.Error("Cannot submit transaction: destination chain is not connected",
			"chain", chainID, "sourceNonce", event.SourceNonce)
		telemetry.UpdateRelaySubmissionFailed(chainID)

		return false
	}

	if event.Amount == nil || event.SourceNonce == nil {
		s.logger.Error("Missing fields in processed event", "tx", event.TxHash)
		telemetry.UpdateRelaySubmissionFailed(chainID)

		return false
	}

	s.logger.Info("Preparing unlock transaction",
		"chain", chainID, "recipient", event.Recipient,
		"amount", event.Amount, "sourceNonce", event.SourceNonce)

	txHash, err := s.contract.UnlockTokens(ctx, event.Recipient, event.Amount, event.SourceNonce)
	if err != nil {
		s.logger.Error("Failed to submit unlock transaction",
			"chain", chainID, "sourceNonce", event.SourceNonce, "err", err)
		telemetry.UpdateRelaySubmissionFailed(chainID)

		return false
	}

	s.logger.Info("Unlock transaction submitted",
		"chain", chainID, "sourceNonce", event.SourceNonce, "hash", txHash)
	telemetry.UpdateRelaySubmissionSucceeded(chainID)

	return true
}
