// Package stats provides session statistics tracking for CalBot.
package stats

import (
	"sync"
	"time"
)

// Collector tracks conversation metrics for a session.
type Collector struct {
	mu sync.Mutex

	startTime     time.Time
	turnCount     int64
	requestCount  int64
	toolCallCount int64
	tokenCount    int64
	errorCount    int64
	totalDuration int64 // nanoseconds
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
	}
}

// Stats represents session statistics at a point in time.
type Stats struct {
	Uptime        string  `json:"uptime"`
	TurnCount     int64   `json:"turn_count"`
	RequestCount  int64   `json:"request_count"`
	ToolCallCount int64   `json:"tool_call_count"`
	TokenCount    int64   `json:"token_count"`
	ErrorCount    int64   `json:"error_count"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
}

// Collect returns current session statistics.
func (c *Collector) Collect() *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	avgLatency := float64(0)
	if c.requestCount > 0 {
		avgLatency = float64(c.totalDuration) / float64(c.requestCount) / 1e6
	}

	return &Stats{
		Uptime:        time.Since(c.startTime).String(),
		TurnCount:     c.turnCount,
		RequestCount:  c.requestCount,
		ToolCallCount: c.toolCallCount,
		TokenCount:    c.tokenCount,
		ErrorCount:    c.errorCount,
		AvgLatencyMs:  avgLatency,
	}
}

// RecordTurn records a completed user turn.
func (c *Collector) RecordTurn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turnCount++
}

// RecordRequest records a completed model request.
func (c *Collector) RecordRequest(tokens int, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestCount++
	c.tokenCount += int64(tokens)
	c.totalDuration += duration.Nanoseconds()
}

// RecordToolCall records an executed tool invocation.
func (c *Collector) RecordToolCall() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toolCallCount++
}

// RecordError records an error.
func (c *Collector) RecordError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// StartTime returns when the collector started.
func (c *Collector) StartTime() time.Time {
	return c.startTime
}
