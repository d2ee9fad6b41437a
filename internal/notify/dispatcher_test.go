package notify

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/lead-intake/api/internal/config"
	"github.com/octobees/lead-intake/api/internal/entity"
	"github.com/octobees/lead-intake/api/internal/logging"
)

type fakeSender struct {
	mu    sync.Mutex
	sent  []EmailMessage
	err   error
	panic bool
}

func (f *fakeSender) Send(_ context.Context, msg EmailMessage) error {
	if f.panic {
		panic("relay exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// syncBuffer guards a bytes.Buffer shared with dispatcher goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var testLead = entity.NewLead("Jane", "Acme", "jane@example.com")

func TestDispatcherDisabledWithoutCredentials(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(config.MailConfig{Port: 587, To: "sales@example.com"}, sender, logging.Discard())

	assert.False(t, d.Enabled())
	d.Dispatch(testLead)
	d.Wait()
	assert.NoError(t, d.Notify(context.Background(), testLead))
	assert.Zero(t, sender.count())
}

func TestDispatcherDisabledWithoutSender(t *testing.T) {
	d := NewDispatcher(relayConfig(), nil, logging.Discard())
	assert.False(t, d.Enabled())
	d.Dispatch(testLead)
	d.Wait()
}

func TestDispatcherSendsInBackground(t *testing.T) {
	buf := &syncBuffer{}
	sender := &fakeSender{}
	d := NewDispatcher(relayConfig(), sender, logging.NewWithWriter(buf, "info"))

	require.True(t, d.Enabled())
	d.Dispatch(testLead)
	d.Wait()

	require.Equal(t, 1, sender.count())
	msg := sender.sent[0]
	assert.Equal(t, "sales@example.com", msg.To)
	assert.Equal(t, "New Lead: Jane · Acme", msg.Subject)
	assert.Contains(t, buf.String(), "lead notification sent")
}

func TestDispatcherLogsSendFailure(t *testing.T) {
	buf := &syncBuffer{}
	sender := &fakeSender{err: errors.New("535 authentication failed")}
	d := NewDispatcher(relayConfig(), sender, logging.NewWithWriter(buf, "info"))

	d.Dispatch(testLead)
	d.Wait()

	assert.Equal(t, 1, sender.count())
	assert.Contains(t, buf.String(), "email send error")
	assert.Contains(t, buf.String(), "535 authentication failed")
}

func TestDispatcherRecoversPanics(t *testing.T) {
	buf := &syncBuffer{}
	d := NewDispatcher(relayConfig(), &fakeSender{panic: true}, logging.NewWithWriter(buf, "info"))

	d.Dispatch(testLead)
	d.Wait()

	assert.Contains(t, buf.String(), "lead notification panicked")
	assert.Contains(t, buf.String(), "relay exploded")
}

func TestNotifyReturnsSenderError(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down")}
	d := NewDispatcher(relayConfig(), sender, logging.Discard())

	err := d.Notify(context.Background(), testLead)
	assert.EqualError(t, err, "relay down")
}

// blockingSender holds every send until release is closed.
type blockingSender struct {
	started  chan struct{}
	release  chan struct{}
	finished atomic.Bool
}

func newBlockingSender() *blockingSender {
	return &blockingSender{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (b *blockingSender) Send(ctx context.Context, msg EmailMessage) error {
	b.started <- struct{}{}
	<-b.release
	b.finished.Store(true)
	return nil
}

func TestDispatchDoesNotWaitForDelivery(t *testing.T) {
	sender := newBlockingSender()
	d := NewDispatcher(relayConfig(), sender, logging.Discard())

	returned := make(chan struct{})
	go func() {
		d.Dispatch(testLead)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatalf("Dispatch blocked on delivery")
	}

	select {
	case <-sender.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("send never started")
	}
	assert.False(t, sender.finished.Load(), "send must still be in flight")

	close(sender.release)
	d.Wait()
	assert.True(t, sender.finished.Load())
}
