package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return nil
}

func TestCollectorFoldsRepeatedErrors(t *testing.T) {
	pub := &capturePublisher{}
	l := NewWriter(&bytes.Buffer{})
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Topic: "errors", Publisher: pub})

	for i := 0; i < 3; i++ {
		l.Error("dashboard load failed", String("endpoint", "/api/data"))
	}
	if got := l.collector.Pending(); got != 1 {
		t.Fatalf("expected 1 pending entry, got %d", got)
	}

	l.RemoveCollector()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.batches) != 1 {
		t.Fatalf("expected one flushed batch, got %d", len(pub.batches))
	}
	if pub.topic != "errors" {
		t.Fatalf("unexpected topic %q", pub.topic)
	}
	if c := pub.batches[0][0].Count; c != 3 {
		t.Fatalf("expected count 3, got %d", c)
	}
}

func TestCollectorFlushesAtThreshold(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 2, Publisher: pub})

	c.AddLog("error", "a", nil, "x.go:1")
	c.AddLog("error", "b", nil, "x.go:2")
	if got := c.Pending(); got != 0 {
		t.Fatalf("expected flush at threshold, %d pending", got)
	}
	c.Close()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.batches) != 1 || len(pub.batches[0]) != 2 {
		t.Fatalf("unexpected batches %+v", pub.batches)
	}
}

func TestLoggerWritesErrorField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)
	l.Error("load failed", Error(errors.New("boom")), Int("status", 500))

	out := buf.String()
	if !strings.Contains(out, `"error":"boom"`) || !strings.Contains(out, `"status":500`) {
		t.Fatalf("unexpected log line %s", out)
	}
}
