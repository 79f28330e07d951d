package response

type ErrorResponse struct {
	Err string `json:"err"`
}

// RelayStateResponse reports the poll cursor of one relayed chain.
type RelayStateResponse struct {
	ChainID          string `json:"chainId"`
	LastScannedBlock uint64 `json:"lastScannedBlock"`
	HasState         bool   `json:"hasState"`
}

// ProcessedEventResponse is the durable record kept for a consumed nonce.
type ProcessedEventResponse struct {
	ChainID     string `json:"chainId"`
	Nonce       string `json:"nonce"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
}
