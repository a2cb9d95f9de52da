package engine

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ConnectionPool hands out slots on a shared HTTP client. A caller holds a slot
// for the whole fetch-then-write unit, so at most limit requests are in flight.
type ConnectionPool struct {
	client *http.Client
	sem    *semaphore.Weighted
	limit  int

	mu       sync.Mutex
	inFlight int
	peak     int
}

// NewConnectionPool builds a client whose transport never opens more than limit
// connections per host. base may be nil; it is cloned when it is an *http.Transport.
func NewConnectionPool(limit int, base http.RoundTripper) *ConnectionPool {
	var rt http.RoundTripper
	switch t := base.(type) {
	case nil:
		rt = newTransport(limit)
	case *http.Transport:
		clone := t.Clone()
		clone.MaxConnsPerHost = limit
		clone.MaxIdleConnsPerHost = limit
		rt = clone
	default:
		rt = base
	}

	return &ConnectionPool{
		client: &http.Client{Transport: rt},
		sem:    semaphore.NewWeighted(int64(limit)),
		limit:  limit,
	}
}

func newTransport(limit int) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          limit,
		MaxIdleConnsPerHost:   limit,
		MaxConnsPerHost:       limit,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// Acquire blocks until a slot is free or ctx is done. The returned release func
// is idempotent and must be called exactly once the unit is finished.
func (p *ConnectionPool) Acquire(ctx context.Context) (func(), error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.inFlight++
	if p.inFlight > p.peak {
		p.peak = p.inFlight
	}
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			p.inFlight--
			p.mu.Unlock()
			p.sem.Release(1)
		})
	}, nil
}

func (p *ConnectionPool) Client() *http.Client { return p.client }

func (p *ConnectionPool) Limit() int { return p.limit }

// InFlight returns the number of slots currently held.
func (p *ConnectionPool) InFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Peak returns the highest number of slots held at the same time.
func (p *ConnectionPool) Peak() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peak
}

// Close drops idle keep-alive connections held by the transport.
func (p *ConnectionPool) Close() {
	p.client.CloseIdleConnections()
}
