// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		requestID string
		want      string
	}{
		{
			name:      "nil context",
			ctx:       nil,
			requestID: "test-id-123",
			want:      "test-id-123",
		},
		{
			name:      "background context",
			ctx:       context.Background(),
			requestID: "req-456",
			want:      "req-456",
		},
		{
			name:      "empty request ID",
			ctx:       context.Background(),
			requestID: "",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithRequestID(tt.ctx, tt.requestID)
			got := RequestIDFromContext(ctx)
			if got != tt.want {
				t.Errorf("RequestIDFromContext() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestIDFromContextMissing(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}
}

func TestWithComponentFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())
	ctx = ContextWithRequestID(ctx, "rid-1")

	l := WithComponentFromContext(ctx, "jobs")
	l.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry[FieldComponent] != "jobs" {
		t.Errorf("component = %v, want jobs", entry[FieldComponent])
	}
	if entry[FieldRequestID] != "rid-1" {
		t.Errorf("request_id = %v, want rid-1", entry[FieldRequestID])
	}
}

func TestConfigureAttachesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "svc", Version: "v9"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("test")
	l.Debug().Msg("configured")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry[FieldService] != "svc" || entry[FieldVersion] != "v9" {
		t.Errorf("unexpected identity fields: %v", entry)
	}
}

func TestWithContextAddsOperation(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithOperation(ContextWithRequestID(context.Background(), "rid-2"), "epg")

	l := WithContext(ctx, zerolog.New(&buf))
	l.Info().Msg("delivering")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry[FieldOperation] != "epg" || entry[FieldRequestID] != "rid-2" {
		t.Errorf("unexpected correlation fields: %v", entry)
	}
	if got := OperationFromContext(context.Background()); got != "" {
		t.Errorf("expected empty operation, got %q", got)
	}
}
