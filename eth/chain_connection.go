package eth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hashicorp/go-hclog"
)

var ErrNotConnected = errors.New("chain connection is not established")

type IChainConnection interface {
	Connect(ctx context.Context)
	IsConnected(ctx context.Context) bool
	LatestBlockNumber(ctx context.Context) (uint64, error)
	Client() *ethclient.Client
	ChainID() string
}

// ChainConnectionImpl owns connectivity to a single chain node. A failed
// Connect leaves the connection in a disconnected state instead of
// propagating the error, callers must check IsConnected before use.
type ChainConnectionImpl struct {
	nodeURL string
	chainID string
	client  *ethclient.Client
	lock    sync.Mutex
	logger  hclog.Logger
}

var _ IChainConnection = (*ChainConnectionImpl)(nil)

func NewChainConnection(nodeURL, chainID string, logger hclog.Logger) *ChainConnectionImpl {
	return &ChainConnectionImpl{
		nodeURL: nodeURL,
		chainID: chainID,
		logger:  logger,
	}
}

func (c *ChainConnectionImpl) Connect(ctx context.Context) {
	client, err := ethclient.DialContext(ctx, c.nodeURL)
	if err != nil {
		c.logger.Error("Failed to connect", "chain", c.chainID, "url", c.nodeURL, "err", err)
		c.setClient(nil)

		return
	}

	// dialing an http endpoint is lazy, probe the node before accepting the client
	if _, err := client.ChainID(ctx); err != nil {
		c.logger.Error("Failed to connect after initialization", "chain", c.chainID, "err", err)

		client.Close()
		c.setClient(nil)

		return
	}

	c.setClient(client)

	c.logger.Info("Successfully connected", "chain", c.chainID, "url", c.nodeURL)
}

func (c *ChainConnectionImpl) IsConnected(ctx context.Context) bool {
	client := c.Client()
	if client == nil {
		return false
	}

	if _, err := client.ChainID(ctx); err != nil {
		c.logger.Warn("Connectivity check failed", "chain", c.chainID, "err", err)

		client.Close()
		c.setClient(nil)

		return false
	}

	return true
}

func (c *ChainConnectionImpl) LatestBlockNumber(ctx context.Context) (uint64, error) {
	client := c.Client()
	if client == nil {
		return 0, ErrNotConnected
	}

	blockNumber, err := client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("error fetching block number from %s: %w", c.chainID, err)
	}

	return blockNumber, nil
}

func (c *ChainConnectionImpl) Client() *ethclient.Client {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.client
}

func (c *ChainConnectionImpl) ChainID() string {
	return c.chainID
}

func (c *ChainConnectionImpl) setClient(client *ethclient.Client) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.client = client
}
