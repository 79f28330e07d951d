package eth

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestChainConnection(t *testing.T) {
	ctx := context.Background()

	t.Run("starts disconnected", func(t *testing.T) {
		connection := NewChainConnection("http://localhost:12345", "source", hclog.NewNullLogger())

		require.Equal(t, "source", connection.ChainID())
		require.Nil(t, connection.Client())

		_, err := connection.LatestBlockNumber(ctx)
		require.ErrorIs(t, err, ErrNotConnected)
	})

	t.Run("connect with malformed url stays disconnected", func(t *testing.T) {
		connection := NewChainConnection("://not-a-url", "source", hclog.NewNullLogger())
		connection.Connect(ctx)

		require.Nil(t, connection.Client())
		require.False(t, connection.IsConnected(ctx))
	})
}
