package main

import (
	"context"
	"sync"
	"sync/atomic"
)

type task struct {
	fn   func() (interface{}, error)
	done chan taskResult
}

type taskResult struct {
	value interface{}
	err   error
}

// Pool runs blocking work (subprocess waits, mostly) on a fixed set of
// workers so request handlers never tie up serving capacity. It is built in
// main and handed to whoever needs it; there is no package-level instance.
//
// The unbuffered task channel means submission blocks until a worker is
// free, which is the only backpressure this server has.
type Pool struct {
	tasks    chan task
	wg       sync.WaitGroup
	size     int
	inFlight int64
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		tasks: make(chan task),
		size:  size,
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		atomic.AddInt64(&p.inFlight, 1)
		v, err := t.fn()
		atomic.AddInt64(&p.inFlight, -1)
		t.done <- taskResult{value: v, err: err}
	}
}

// Submit hands fn to a worker and waits for its result. The error fn returns
// comes back unchanged. ctx only bounds the wait for a free worker; once fn
// is running it runs to completion (fn enforces its own deadline).
func (p *Pool) Submit(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	t := task{fn: fn, done: make(chan taskResult, 1)}
	select {
	case p.tasks <- t:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	r := <-t.done
	return r.value, r.err
}

// Close stops accepting work and waits for running tasks to drain.
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
}

func (p *Pool) Workers() int { return p.size }

func (p *Pool) InFlight() int { return int(atomic.LoadInt64(&p.inFlight)) }

// runOnPool is a typed front for Pool.Submit.
func runOnPool[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	v, err := p.Submit(ctx, func() (interface{}, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
