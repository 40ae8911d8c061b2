package events

import (
	"context"
	"io"
	"sync"

	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/ports"
)

// Queue is a FIFO generation-job queue backed by a slice. Dequeue returns
// io.EOF when the queue is empty so the worker can tell idle apart from
// failure.
type Queue struct {
	mu   sync.Mutex
	jobs []ports.GenerationJob
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) Enqueue(_ context.Context, job ports.GenerationJob) error {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()
	return nil
}

func (q *Queue) Dequeue(_ context.Context) (ports.GenerationJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return ports.GenerationJob{}, io.EOF
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Publisher records progress envelopes in memory. The transport behind it is
// swappable; handlers and the worker only see the ProgressPublisher port.
type Publisher struct {
	mu       sync.Mutex
	messages []contracts.EventEnvelope
}

func NewPublisher() *Publisher { return &Publisher{} }

func (p *Publisher) Publish(_ context.Context, envelope contracts.EventEnvelope) error {
	p.mu.Lock()
	p.messages = append(p.messages, envelope)
	p.mu.Unlock()
	return nil
}

func (p *Publisher) Messages() []contracts.EventEnvelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]contracts.EventEnvelope, len(p.messages))
	copy(out, p.messages)
	return out
}
