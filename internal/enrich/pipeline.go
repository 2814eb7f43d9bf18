package enrich

import (
	"context"
	"log"
	"sync"
)

// Pipeline applies a sequence of stages to articles flowing through a
// channel. For each incoming item, steps within the same stage run in
// parallel, and stages themselves run in order. Step errors are logged
// and do not stop processing of the current item.
//
// Pipeline is generic over the item type T.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// NewPipeline constructs a Pipeline from the provided stages. Stages are
// applied to each item in order.
func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Process consumes items from the input channel and returns a channel
// emitting the same items once every stage has been applied. For each item:
//   - All steps in a stage start concurrently and must complete before the
//     next stage begins (a stage barrier).
//   - Errors returned by steps are logged and ignored so the item still
//     moves on; an item is never dropped for a failed enrichment.
//   - The context is passed to steps for cancellation; the pipeline itself
//     runs until the input channel closes, then closes the output channel.
func (p *Pipeline[T]) Process(ctx context.Context, in <-chan *T) <-chan *T {
	out := make(chan *T)
	go func() {
		defer close(out)

		for item := range in {
			for _, stage := range p.stages {
				var wg sync.WaitGroup
				for _, step := range stage.steps {
					wg.Add(1)
					go func(step Step[T]) {
						defer wg.Done()
						if err := step(ctx, item); err != nil {
							log.Printf("Enrichment step failed: %v", err)
						}
					}(step)
				}
				// Stage barrier: all steps finish before the next stage.
				wg.Wait()
			}

			select {
			case out <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
