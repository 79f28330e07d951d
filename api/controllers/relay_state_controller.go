package controllers

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/Vikakfuse/star-craft/api/core"
	"github.com/Vikakfuse/star-craft/api/model/response"
	"github.com/Vikakfuse/star-craft/api/utils"
	relayerCore "github.com/Vikakfuse/star-craft/relayer/core"
	"github.com/hashicorp/go-hclog"
)

// RelayStateControllerImpl exposes the relayer's durable state for
// inspection. Reads go straight to the database, which supports concurrent
// read transactions alongside the relayer's writes.
type RelayStateControllerImpl struct {
	db     relayerCore.Database
	logger hclog.Logger
}

var _ core.APIController = (*RelayStateControllerImpl)(nil)

func NewRelayStateController(db relayerCore.Database, logger hclog.Logger) *RelayStateControllerImpl {
	return &RelayStateControllerImpl{
		db:     db,
		logger: logger,
	}
}

func (*RelayStateControllerImpl) GetPathPrefix() string {
	return "RelayState"
}

func (c *RelayStateControllerImpl) GetEndpoints() []*core.APIEndpoint {
	return []*core.APIEndpoint{
		{Path: "Get", Method: http.MethodGet, Handler: c.getRelayState, APIKeyAuth: true},
		{Path: "GetProcessedEvent", Method: http.MethodGet, Handler: c.getProcessedEvent, APIKeyAuth: true},
	}
}

// getRelayState godoc
// @Summary Get the poll cursor for a chain
// @Param chainId query string true "chain id"
// @Success 200 {obj} response.RelayStateResponse
// @Security ApiKeyAuth
// @Router /RelayState/Get [get]
func (c *RelayStateControllerImpl) getRelayState(w http.ResponseWriter, r *http.Request) {
	chainID := r.URL.Query().Get("chainId")
	if chainID == "" {
		utils.WriteErrorResponse(w, r, http.StatusBadRequest, errors.New("chainId missing from query"), c.logger)

		return
	}

	blockNumber, exists, err := c.db.GetLastScannedBlock(chainID)
	if err != nil {
		utils.WriteErrorResponse(w, r, http.StatusInternalServerError, err, c.logger)

		return
	}

	utils.WriteResponse(w, r, http.StatusOK, response.RelayStateResponse{
		ChainID:          chainID,
		LastScannedBlock: blockNumber,
		HasState:         exists,
	}, c.logger)
}

// getProcessedEvent godoc
// @Summary Get the stored record for a consumed nonce
// @Param chainId query string true "chain id"
// @Param nonce query string true "source chain nonce"
// @Success 200 {obj} response.ProcessedEventResponse
// @Security ApiKeyAuth
// @Router /RelayState/GetProcessedEvent [get]
func (c *RelayStateControllerImpl) getProcessedEvent(w http.ResponseWriter, r *http.Request) {
	queryValues := r.URL.Query()

	chainID := queryValues.Get("chainId")
	if chainID == "" {
		utils.WriteErrorResponse(w, r, http.StatusBadRequest, errors.New("chainId missing from query"), c.logger)

		return
	}

	nonce, ok := new(big.Int).SetString(queryValues.Get("nonce"), 10)
	if !ok {
		utils.WriteErrorResponse(w, r, http.StatusBadRequest, errors.New("nonce missing or malformed"), c.logger)

		return
	}

	record, err := c.db.GetProcessedNonceRecord(chainID, nonce)
	if err != nil {
		utils.WriteErrorResponse(w, r, http.StatusInternalServerError, err, c.logger)

		return
	}

	if record == nil {
		utils.WriteErrorResponse(w, r, http.StatusNotFound, errors.New("nonce not processed"), c.logger)

		return
	}

	utils.WriteResponse(w, r, http.StatusOK, response.ProcessedEventResponse{
		ChainID:     chainID,
		Nonce:       nonce.String(),
		TxHash:      record.TxHash,
		BlockNumber: record.BlockNumber,
		Recipient:   record.Recipient,
		Amount:      record.Amount,
	}, c.logger)
}
