// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type runIDKey struct{}

// NewRunID returns a short run identifier: the first 8 characters of a
// random UUID.
func NewRunID() string {
	return uuid.New().String()[:8]
}

// ContextWithNewRunID tags ctx with a fresh run ID and attaches a child of
// the global logger carrying it as the run_id field.
//
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Msg("Beginning of data processing...")
func ContextWithNewRunID(ctx context.Context) context.Context {
	return ContextWithRunID(ctx, NewRunID())
}

// ContextWithRunID is ContextWithNewRunID with a caller-chosen ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, runIDKey{}, id)
	l := Logger().With().Str("run_id", id).Logger()
	return l.WithContext(ctx)
}

// RunID returns the run ID stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Ctx returns the logger attached to ctx, falling back to the global
// logger when none is attached.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	l := Logger()
	return &l
}
