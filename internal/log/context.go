// SPDX-License-Identifier: MIT

// Package log provides structured logging utilities.
package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	operationKey
)

// ContextWithRequestID tags ctx with a correlation id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation id, or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// ContextWithOperation tags ctx with the IPTV Manager operation being served
// ("channels" or "epg"), so nested components log it without plumbing.
func ContextWithOperation(ctx context.Context, op string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, operationKey, op)
}

// OperationFromContext returns the operation tag, or "".
func OperationFromContext(ctx context.Context) string {
	return stringValue(ctx, operationKey)
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// WithContext adds the request id and operation found in ctx to logger.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	rid, op := RequestIDFromContext(ctx), OperationFromContext(ctx)
	if rid == "" && op == "" {
		return logger
	}
	c := logger.With()
	if rid != "" {
		c = c.Str(FieldRequestID, rid)
	}
	if op != "" {
		c = c.Str(FieldOperation, op)
	}
	return c.Logger()
}

// WithComponentFromContext is WithComponent plus the fields of WithContext.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	l := WithContext(ctx, *FromContext(ctx))
	return l.With().Str(FieldComponent, component).Logger()
}

// FromContext returns the logger attached with zerolog's WithContext, or the
// base logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	b := Base()
	return &b
}
