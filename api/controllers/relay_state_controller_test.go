package controllers

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vikakfuse/star-craft/api/model/response"
	"github.com/Vikakfuse/star-craft/relayer/core"
	databaseaccess "github.com/Vikakfuse/star-craft/relayer/database_access"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestRelayStateController(t *testing.T) {
	findEndpoint := func(c *RelayStateControllerImpl, path string) *http.HandlerFunc {
		for _, endpoint := range c.GetEndpoints() {
			if endpoint.Path == path {
				handler := http.HandlerFunc(endpoint.Handler)

				return &handler
			}
		}

		return nil
	}

	t.Run("get relay state", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetLastScannedBlock", "sepolia").Return(uint64(120), true, nil)

		c := NewRelayStateController(dbMock, hclog.NewNullLogger())
		handler := findEndpoint(c, "Get")
		require.NotNil(t, handler)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/RelayState/Get?chainId=sepolia", nil)

		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var state response.RelayStateResponse

		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&state))
		require.Equal(t, "sepolia", state.ChainID)
		require.Equal(t, uint64(120), state.LastScannedBlock)
		require.True(t, state.HasState)
	})

	t.Run("get relay state without chainId", func(t *testing.T) {
		c := NewRelayStateController(&databaseaccess.DBMock{}, hclog.NewNullLogger())
		handler := findEndpoint(c, "Get")
		require.NotNil(t, handler)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/RelayState/Get", nil)

		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("get relay state db error", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetLastScannedBlock", "sepolia").Return(uint64(0), false, errors.New("test err"))

		c := NewRelayStateController(dbMock, hclog.NewNullLogger())
		handler := findEndpoint(c, "Get")
		require.NotNil(t, handler)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/RelayState/Get?chainId=sepolia", nil)

		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
	})

	t.Run("get processed event", func(t *testing.T) {
		record := &core.ProcessedEventRecord{
			TxHash:      "0xab",
			BlockNumber: 95,
			Recipient:   "0x2222222222222222222222222222222222222222",
			Amount:      "1000",
		}

		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetProcessedNonceRecord", "sepolia", big.NewInt(5)).Return(record, nil)

		c := NewRelayStateController(dbMock, hclog.NewNullLogger())
		handler := findEndpoint(c, "GetProcessedEvent")
		require.NotNil(t, handler)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet,
			"/api/RelayState/GetProcessedEvent?chainId=sepolia&nonce=5", nil)

		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var event response.ProcessedEventResponse

		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&event))
		require.Equal(t, "5", event.Nonce)
		require.Equal(t, record.TxHash, event.TxHash)
		require.Equal(t, record.Amount, event.Amount)
	})

	t.Run("get processed event with malformed nonce", func(t *testing.T) {
		c := NewRelayStateController(&databaseaccess.DBMock{}, hclog.NewNullLogger())
		handler := findEndpoint(c, "GetProcessedEvent")
		require.NotNil(t, handler)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet,
			"/api/RelayState/GetProcessedEvent?chainId=sepolia&nonce=abc", nil)

		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("get processed event for unknown nonce", func(t *testing.T) {
		dbMock := &databaseaccess.DBMock{}
		dbMock.On("GetProcessedNonceRecord", "sepolia", big.NewInt(9)).Return(nil, nil)

		c := NewRelayStateController(dbMock, hclog.NewNullLogger())
		handler := findEndpoint(c, "GetProcessedEvent")
		require.NotNil(t, handler)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet,
			"/api/RelayState/GetProcessedEvent?chainId=sepolia&nonce=9", nil)

		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
