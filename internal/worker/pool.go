package worker

import (
	"errors"
	"sync"
)

// ErrStopped is returned by Submit once Stop has been called.
var ErrStopped = errors.New("worker pool stopped")

type task func()

type Pool struct {
	wg      sync.WaitGroup
	jobs    chan task
	mu      sync.RWMutex
	closed  bool
	onDepth func(int)
}

// NewPool starts n workers reading from a queue of the given capacity.
// onDepth, when set, is called with the queue length after every enqueue and
// dequeue.
func NewPool(n, capacity int, onDepth func(int)) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, capacity), onDepth: onDepth}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.reportDepth()
				job()
			}
		}()
	}
	return p
}

// Submit enqueues f, blocking while the queue is full.
func (p *Pool) Submit(f func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrStopped
	}
	p.jobs <- f
	p.reportDepth()
	return nil
}

// Stop rejects new work and waits for queued jobs to finish. Safe to call twice.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) reportDepth() {
	if p.onDepth != nil {
		p.onDepth(len(p.jobs))
	}
}
