package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	clientErrors    uint64
	totalDurationMs uint64

	mu         sync.Mutex
	operations map[string]*operationCounts
}

type operationCounts struct {
	ok     uint64
	failed uint64
}

func New() *Collector {
	return &Collector{operations: map[string]*operationCounts{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	} else if status >= 400 {
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordOperation counts the outcome of a data-access operation.
func (c *Collector) RecordOperation(op string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts, found := c.operations[op]
	if !found {
		counts = &operationCounts{}
		c.operations[op] = counts
	}
	if ok {
		counts.ok++
	} else {
		counts.failed++
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	clientErrs := atomic.LoadUint64(&c.clientErrors)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	operations := make(map[string]map[string]uint64, len(c.operations))
	for op, counts := range c.operations {
		operations[op] = map[string]uint64{"ok": counts.ok, "failed": counts.failed}
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       errs,
		"clientErrorsTotal": clientErrs,
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"operations":        operations,
	}
}
