// Package enrich provides a small, generic pipeline for filling in article
// fields before archival. Independent enrichment steps run in parallel
// within a stage, while stages execute sequentially.
package enrich

import (
	"context"
)

// Step is a single enrichment operation that mutates the given item.
// Implementations should be safe to run concurrently with the other steps
// in the same stage operating on the same item. If a step fails it returns
// an error; the pipeline logs the error and continues.
// The context can be used to observe cancellation or timeouts.
//
// The item pointer lets steps modify the entity in place so enrichment data
// accumulates over the pipeline run.
//
// Example:
//
//	func fillDescription(ctx context.Context, a *models.ArchivedArticle) error {
//		a.Description = "..."
//		return nil
//	}
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that are safe to execute in parallel for a single
// item. All steps in a stage start together, and the pipeline waits for
// them before moving to the next stage.
//
// Note: steps must coordinate on shared fields if they might write to the
// same location concurrently.
type Stage[T any] struct {
	steps []Step[T]
}

// NewStage constructs a Stage from the provided steps.
// Steps in a stage run concurrently for each item.
func NewStage[T any](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps}
}
