package events

import (
	"context"
	"io"
	"testing"

	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/ports"
)

func TestQueueFIFOAndIdle(t *testing.T) {
	q := NewQueue()
	ctx := context.Background()

	if _, err := q.Dequeue(ctx); err != io.EOF {
		t.Fatalf("empty queue should signal io.EOF, got %v", err)
	}

	for _, id := range []string{"job-1", "job-2", "job-3"} {
		if err := q.Enqueue(ctx, ports.GenerationJob{JobID: id}); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}
	if q.Len() != 3 {
		t.Fatalf("len = %d, want 3", q.Len())
	}

	for _, want := range []string{"job-1", "job-2", "job-3"} {
		job, err := q.Dequeue(ctx)
		if err != nil {
			t.Fatalf("dequeue: %v", err)
		}
		if job.JobID != want {
			t.Fatalf("dequeued %s, want %s", job.JobID, want)
		}
	}
	if _, err := q.Dequeue(ctx); err != io.EOF {
		t.Fatalf("drained queue should signal io.EOF, got %v", err)
	}
}

func TestPublisherRecordsEnvelopes(t *testing.T) {
	p := NewPublisher()
	ctx := context.Background()

	if err := p.Publish(ctx, contracts.EventEnvelope{EventID: "e1", EventType: contracts.EventTypeStageStarted}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Publish(ctx, contracts.EventEnvelope{EventID: "e2", EventType: contracts.EventTypeClipCompleted}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	msgs := p.Messages()
	if len(msgs) != 2 || msgs[0].EventID != "e1" || msgs[1].EventType != contracts.EventTypeClipCompleted {
		t.Fatalf("messages = %+v", msgs)
	}

	// Messages returns a copy; mutating it must not corrupt the log.
	msgs[0].EventID = "mutated"
	if p.Messages()[0].EventID != "e1" {
		t.Fatalf("publisher log mutated through the returned slice")
	}
}
