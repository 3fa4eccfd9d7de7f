package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	advanceStatuses "github.com/m04kA/SMC-CoachScheduler/internal/usecase/advance_statuses"
	materializeSessions "github.com/m04kA/SMC-CoachScheduler/internal/usecase/materialize_sessions"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeMaterializer struct {
	rec     *recorder
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeMaterializer) Execute(_ context.Context, _ *materializeSessions.Request) (*materializeSessions.Report, error) {
	f.rec.add("materialize")
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &materializeSessions.Report{RunID: "r"}, nil
}

type fakeAdvancer struct {
	rec *recorder
}

func (f *fakeAdvancer) Execute(_ context.Context, _ *advanceStatuses.Request) (*advanceStatuses.Response, error) {
	f.rec.add("advance")
	return &advanceStatuses.Response{}, nil
}

func TestRunner_TickMaterializesThenAdvances(t *testing.T) {
	rec := &recorder{}
	r := NewRunner(&fakeMaterializer{rec: rec}, &fakeAdvancer{rec: rec}, time.Hour, nopLogger{})

	assert.True(t, r.Tick(context.Background()))
	assert.Equal(t, []string{"materialize", "advance"}, rec.snapshot())
}

func TestRunner_AdvancesEvenWhenMaterializationFails(t *testing.T) {
	rec := &recorder{}
	r := NewRunner(&fakeMaterializer{rec: rec, err: errors.New("db down")}, &fakeAdvancer{rec: rec}, time.Hour, nopLogger{})

	r.Tick(context.Background())
	assert.Equal(t, []string{"materialize", "advance"}, rec.snapshot())
}

func TestRunner_SkipsOverlappingTick(t *testing.T) {
	rec := &recorder{}
	m := &fakeMaterializer{rec: rec, started: make(chan struct{}), release: make(chan struct{})}
	r := NewRunner(m, &fakeAdvancer{rec: rec}, time.Hour, nopLogger{})

	done := make(chan bool)
	go func() { done <- r.Tick(context.Background()) }()

	<-m.started
	assert.False(t, r.Tick(context.Background()))

	close(m.release)
	require.True(t, <-done)
	assert.Equal(t, []string{"materialize", "advance"}, rec.snapshot())
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	rec := &recorder{}
	r := NewRunner(&fakeMaterializer{rec: rec}, &fakeAdvancer{rec: rec}, time.Hour, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}
