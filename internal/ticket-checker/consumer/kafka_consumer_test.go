package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/checker"
)

type runnerFake struct {
	errs  []error
	calls int
}

func (r *runnerFake) RunBatch(_ context.Context, drawID string) (checker.Summary, error) {
	r.calls++
	if len(r.errs) == 0 {
		return checker.Summary{DrawID: drawID}, nil
	}
	err := r.errs[0]
	r.errs = r.errs[1:]
	return checker.Summary{DrawID: drawID}, err
}

type dlqFake struct{ msgs []kafka.Message }

func (d *dlqFake) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	d.msgs = append(d.msgs, msgs...)
	return nil
}

func newProc(r checker.BatchRunner, dlq *dlqFake) *Processor {
	return &Processor{Log: zap.NewNop(), Runner: r, DLQ: dlq, Backoff: time.Millisecond}
}

func msg(v string) kafka.Message { return kafka.Message{Key: []byte("k"), Value: []byte(v)} }

func TestHandleSuccess(t *testing.T) {
	r, dlq := &runnerFake{}, &dlqFake{}
	newProc(r, dlq).Handle(context.Background(), msg(`{"draw_id":"d1","game":"4D"}`))
	if r.calls != 1 || len(dlq.msgs) != 0 {
		t.Errorf("calls=%d dlq=%d", r.calls, len(dlq.msgs))
	}
}

func TestHandleMalformedDrawGoesToDLQ(t *testing.T) {
	r := &runnerFake{errs: []error{lottery.ErrMalformedDraw}}
	dlq := &dlqFake{}
	newProc(r, dlq).Handle(context.Background(), msg(`{"draw_id":"d1"}`))

	if r.calls != 1 {
		t.Errorf("malformed draw must not be retried, calls=%d", r.calls)
	}
	if len(dlq.msgs) != 1 {
		t.Fatalf("dlq = %d messages", len(dlq.msgs))
	}
	h := dlq.msgs[0].Headers
	if len(h) != 1 || string(h[0].Value) != "MalformedDraw" {
		t.Errorf("headers = %+v", h)
	}
}

func TestHandleRetriesTransientError(t *testing.T) {
	boom := errors.New("db down")
	r := &runnerFake{errs: []error{boom, boom}}
	dlq := &dlqFake{}
	newProc(r, dlq).Handle(context.Background(), msg(`{"draw_id":"d1"}`))

	if r.calls != 3 || len(dlq.msgs) != 0 {
		t.Errorf("calls=%d dlq=%d", r.calls, len(dlq.msgs))
	}
}

func TestHandleInvalidPayload(t *testing.T) {
	r, dlq := &runnerFake{}, &dlqFake{}
	var stages []string
	p := newProc(r, dlq)
	p.OnError = func(s string) { stages = append(stages, s) }
	p.Handle(context.Background(), msg(`not json`))

	if r.calls != 0 || len(dlq.msgs) != 1 || len(stages) != 1 || stages[0] != "decode" {
		t.Errorf("calls=%d dlq=%d stages=%v", r.calls, len(dlq.msgs), stages)
	}
}
