package metrics

import "sync/atomic"

type Counters struct {
	RequestsDispatched uint64
	RequestsSucceeded  uint64
	RequestsFailed     uint64
	TokensGenerated    uint64
	TokensRefreshed    uint64
	Retries            uint64
}

func (c *Counters) IncDispatched() {
	atomic.AddUint64(&c.RequestsDispatched, 1)
}

func (c *Counters) IncSucceeded() {
	atomic.AddUint64(&c.RequestsSucceeded, 1)
}

func (c *Counters) IncFailed() {
	atomic.AddUint64(&c.RequestsFailed, 1)
}

func (c *Counters) IncTokenGenerated() {
	atomic.AddUint64(&c.TokensGenerated, 1)
}

func (c *Counters) IncTokenRefreshed() {
	atomic.AddUint64(&c.TokensRefreshed, 1)
}

func (c *Counters) IncRetries() {
	atomic.AddUint64(&c.Retries, 1)
}
