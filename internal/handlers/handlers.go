// Package handlers implements the HTTP surface of the file-bag service.
//
// The handlers are thin glue: they authenticate nothing themselves (identity
// and tier arrive as trusted headers populated upstream), validate uploads,
// enforce the free-tier daily quota, and hand the batch to the conversion
// orchestrator.
package handlers

import (
	"context"

	"file-bag/internal/convert"
	"file-bag/internal/quota"
	"file-bag/internal/startup"
)

// BatchConverter runs one conversion batch. Satisfied by *convert.Converter.
type BatchConverter interface {
	Convert(ctx context.Context, req convert.Request) ([]convert.Result, error)
}

// Handlers bundles the dependencies of all HTTP handlers.
type Handlers struct {
	converter BatchConverter
	quota     *quota.Store
	config    *startup.Config
}

// New creates the handler set.
func New(converter BatchConverter, store *quota.Store, config *startup.Config) *Handlers {
	return &Handlers{
		converter: converter,
		quota:     store,
		config:    config,
	}
}
