package playback

import (
	"context"
	"errors"
	"sync"

	"github.com/uptrace/bun"

	"github.com/soundcord/soundcord-bot/app/eventbus"
	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
	audioevents "github.com/soundcord/soundcord-bot/app/modules/audio/domain/events"
	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
)

// callLog records voice-side calls in order so tests can assert teardown
// happens before the next connect.
type callLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *callLog) record(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

type fakeSession struct {
	log  *callLog
	name string
	idle chan struct{}
	errs chan error

	streamErr   error
	destroyOnce sync.Once

	mu           sync.Mutex
	streamedData []byte
	streamedVol  int
}

func newFakeSession(log *callLog, name string) *fakeSession {
	return &fakeSession{
		log:  log,
		name: name,
		idle: make(chan struct{}),
		errs: make(chan error, 1),
	}
}

func (s *fakeSession) Stream(data []byte, volume int) error {
	s.log.record(s.name + ".Stream")
	if s.streamErr != nil {
		return s.streamErr
	}
	s.mu.Lock()
	s.streamedData = data
	s.streamedVol = volume
	s.mu.Unlock()
	return nil
}

func (s *fakeSession) Idle() <-chan struct{} { return s.idle }
func (s *fakeSession) Err() <-chan error     { return s.errs }

func (s *fakeSession) Destroy() error {
	s.destroyOnce.Do(func() { s.log.record(s.name + ".Destroy") })
	return nil
}

// complete simulates natural end of playback.
func (s *fakeSession) complete() { close(s.idle) }

// fail simulates a mid-playback failure.
func (s *fakeSession) fail(err error) { s.errs <- err }

func (s *fakeSession) streamed() ([]byte, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamedData, s.streamedVol
}

// fakeConnector hands out queued sessions in order.
type fakeConnector struct {
	log     *callLog
	joinErr error

	mu    sync.Mutex
	queue []*fakeSession
	joins int
}

func (c *fakeConnector) Join(ctx context.Context, channelID string) (Session, error) {
	c.log.record("Join:" + channelID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.joins++
	if c.joinErr != nil {
		return nil, c.joinErr
	}
	if len(c.queue) == 0 {
		return nil, errors.New("no queued session")
	}
	session := c.queue[0]
	c.queue = c.queue[1:]
	return session, nil
}

func (c *fakeConnector) joinCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.joins
}

// fakeDataRepository serves only payload lookups; the orchestrator uses
// nothing else.
type fakeDataRepository struct {
	mu       sync.Mutex
	payloads map[string][]byte
}

func (f *fakeDataRepository) FindDataByID(ctx context.Context, db bun.IDB, id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.payloads[id]
	if !ok {
		return nil, audiodb.ErrDataNotFound
	}
	return data, nil
}

func (f *fakeDataRepository) Create(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand, data []byte) error {
	panic("not used")
}

func (f *fakeDataRepository) UpdateName(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand) error {
	panic("not used")
}

func (f *fakeDataRepository) FindByID(ctx context.Context, db bun.IDB, id string) (*audiodomain.AudioCommand, error) {
	panic("not used")
}

func (f *fakeDataRepository) FindByName(ctx context.Context, db bun.IDB, name string) (*audiodomain.AudioCommand, error) {
	panic("not used")
}

var _ audiodb.Repository = (*fakeDataRepository)(nil)

// fakeBus captures finished events and signals each publish.
type fakeBus struct {
	mu       sync.Mutex
	finished []audioevents.PlayFinishedPayload
	notify   chan struct{}
}

var _ eventbus.EventBus = (*fakeBus)(nil)

func newFakeBus() *fakeBus {
	return &fakeBus{notify: make(chan struct{}, 8)}
}

func (b *fakeBus) PublishPlayRequested(ctx context.Context, payload audioevents.PlayRequestedPayload) error {
	return nil
}

func (b *fakeBus) PublishPlayFinished(ctx context.Context, payload audioevents.PlayFinishedPayload) error {
	b.mu.Lock()
	b.finished = append(b.finished, payload)
	b.mu.Unlock()
	b.notify <- struct{}{}
	return nil
}

func (b *fakeBus) SubscribePlayRequested(ctx context.Context, handler eventbus.PlayRequestedHandler) error {
	return nil
}

func (b *fakeBus) SubscribePlayFinished(ctx context.Context, handler eventbus.PlayFinishedHandler) error {
	return nil
}

func (b *fakeBus) Close() error { return nil }

func (b *fakeBus) finishedEvents() []audioevents.PlayFinishedPayload {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]audioevents.PlayFinishedPayload, len(b.finished))
	copy(out, b.finished)
	return out
}
