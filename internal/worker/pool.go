package worker

import "context"

// Job receives the pool's context and should return early once it is done.
type Job[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	JobID  string
	Output T
	Err    error
}

// Pool runs submitted jobs on a fixed number of goroutines. Results arrive
// in completion order, not submission order. Every accepted job yields
// exactly one Result: jobs still queued when the context ends are not run
// and report the context error instead.
type Pool[T any] struct {
	ctx     context.Context
	jobs    chan jobWrapper[T]
	results chan Result[T]
}

type jobWrapper[T any] struct {
	id string
	fn Job[T]
}

func NewPool[T any](ctx context.Context, workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		ctx:     ctx,
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for job := range p.jobs {
		if err := p.ctx.Err(); err != nil {
			p.results <- Result[T]{JobID: job.id, Err: err}
			continue
		}
		output, err := job.fn(p.ctx)
		p.results <- Result[T]{
			JobID:  job.id,
			Output: output,
			Err:    err,
		}
	}
}

// Submit blocks when the job buffer is full. It returns the context error,
// and the job is dropped without a Result, once the pool's context is done.
func (p *Pool[T]) Submit(id string, fn Job[T]) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	select {
	case p.jobs <- jobWrapper[T]{id: id, fn: fn}:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops the workers once queued jobs are done. Submit must not be
// called afterwards.
func (p *Pool[T]) Close() {
	close(p.jobs)
}
