package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(); err == nil {
		t.Fatalf("expected error without brokers")
	}
}

func TestParseCompression(t *testing.T) {
	cases := map[string]kafka.Compression{
		"gzip":    kafka.Gzip,
		"snappy":  kafka.Snappy,
		"lz4":     kafka.Lz4,
		"zstd":    kafka.Zstd,
		"unknown": kafka.Gzip,
	}
	for in, want := range cases {
		if got := parseCompression(in); got != want {
			t.Fatalf("parseCompression(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewProducerBuildsWriter(t *testing.T) {
	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithCompression("lz4"), WithAsync(true))
	if err != nil {
		t.Fatalf("new producer: %v", err)
	}
	defer p.Close()
	if !p.writer.Async || p.writer.Compression != kafka.Lz4 {
		t.Fatalf("unexpected writer config %+v", p.writer)
	}
}
