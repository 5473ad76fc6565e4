package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("upstream:\n  base_url: http://backend:5000\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("expected default port, got %d", c.Server.Port)
	}
	if c.Upstream.DataPath != "/api/data" || c.Upstream.AnalysisPath != "/api/analysis" {
		t.Fatalf("unexpected upstream paths %q %q", c.Upstream.DataPath, c.Upstream.AnalysisPath)
	}
	if c.Cache.TTL != time.Hour {
		t.Fatalf("expected 1h cache ttl, got %v", c.Cache.TTL)
	}
	if c.Dashboard.EventLimit != 5 {
		t.Fatalf("expected event limit 5, got %d", c.Dashboard.EventLimit)
	}
}

func TestParseRequiresUpstream(t *testing.T) {
	_, err := Parse([]byte("environment: production\n"))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "BaseURL") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestKafkaNeedsBrokers(t *testing.T) {
	_, err := Parse([]byte("upstream:\n  base_url: http://b\nkafka:\n  enabled: true\n"))
	if err == nil || !strings.Contains(err.Error(), "kafka.brokers") {
		t.Fatalf("expected brokers error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	c, err := Parse([]byte("upstream:\n  base_url: http://b\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	env := map[string]string{
		"UPSTREAM_BASE_URL": "http://other:9000/",
		"KAFKA_BROKERS":     "k1:9092,k2:9092",
		"LOG_LEVEL":         "DEBUG",
	}
	c.applyEnv(func(k string) string { return env[k] })

	if got := c.UpstreamURL(c.Upstream.DataPath); got != "http://other:9000/api/data" {
		t.Fatalf("unexpected url %q", got)
	}
	if !c.Kafka.Enabled || len(c.Kafka.Brokers) != 2 {
		t.Fatalf("expected kafka enabled with 2 brokers, got %+v", c.Kafka)
	}
	if c.Log.Level != "debug" {
		t.Fatalf("expected lowercased level, got %q", c.Log.Level)
	}
}
