package engine

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionPoolAcquireBlocksAtLimit(t *testing.T) {
	pool := NewConnectionPool(2, nil)
	defer pool.Close()

	r1, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	r2, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, pool.InFlight())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = pool.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	r1()
	r1() // second release must not free another slot
	assert.Equal(t, 1, pool.InFlight())

	r3, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	r2()
	r3()
	assert.Equal(t, 0, pool.InFlight())
	assert.Equal(t, 2, pool.Peak())
}

func TestConnectionPoolCapsTransport(t *testing.T) {
	pool := NewConnectionPool(4, &http.Transport{MaxConnsPerHost: 100})
	tr, ok := pool.Client().Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 4, tr.MaxConnsPerHost)
	assert.Equal(t, 4, tr.MaxIdleConnsPerHost)
	assert.Equal(t, 4, pool.Limit())
}
