package audioservice

import (
	"context"
	"database/sql"
	"sync"

	"github.com/uptrace/bun"

	"github.com/soundcord/soundcord-bot/app/eventbus"
	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
	audioevents "github.com/soundcord/soundcord-bot/app/modules/audio/domain/events"
	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
)

// FakeDB satisfies db.TxRunner by executing fn directly against an empty
// bun.Tx.
type FakeDB struct{}

func (f *FakeDB) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(context.Context, bun.Tx) error) error {
	return fn(ctx, bun.Tx{})
}

// FakeAudioRepository is an in-memory, programmable stub for
// audiodb.Repository.
type FakeAudioRepository struct {
	mu       sync.Mutex
	commands map[string]audiodomain.AudioCommand
	payloads map[string][]byte
	trace    []string

	CreateFunc       func(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand, data []byte) error
	FindDataByIDFunc func(ctx context.Context, db bun.IDB, id string) ([]byte, error)
}

func NewFakeAudioRepository() *FakeAudioRepository {
	return &FakeAudioRepository{
		commands: map[string]audiodomain.AudioCommand{},
		payloads: map[string][]byte{},
	}
}

func (f *FakeAudioRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeAudioRepository) Stored(id string) (audiodomain.AudioCommand, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd, ok := f.commands[id]
	return cmd, ok
}

func (f *FakeAudioRepository) Seed(cmd audiodomain.AudioCommand, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands[cmd.ID] = cmd
	f.payloads[cmd.ID] = data
}

func (f *FakeAudioRepository) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, call)
}

func (f *FakeAudioRepository) Create(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand, data []byte) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, cmd, data)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands[cmd.ID] = *cmd
	f.payloads[cmd.ID] = data
	return nil
}

func (f *FakeAudioRepository) UpdateName(ctx context.Context, db bun.IDB, cmd *audiodomain.AudioCommand) error {
	f.record("UpdateName")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.commands[cmd.ID]; !ok {
		return audiodb.ErrNotFound
	}
	f.commands[cmd.ID] = *cmd
	return nil
}

func (f *FakeAudioRepository) FindByID(ctx context.Context, db bun.IDB, id string) (*audiodomain.AudioCommand, error) {
	f.record("FindByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd, ok := f.commands[id]
	if !ok {
		return nil, audiodb.ErrNotFound
	}
	copied := cmd
	return &copied, nil
}

func (f *FakeAudioRepository) FindByName(ctx context.Context, db bun.IDB, name string) (*audiodomain.AudioCommand, error) {
	f.record("FindByName")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cmd := range f.commands {
		if cmd.Name == name {
			copied := cmd
			return &copied, nil
		}
	}
	return nil, audiodb.ErrNotFound
}

func (f *FakeAudioRepository) FindDataByID(ctx context.Context, db bun.IDB, id string) ([]byte, error) {
	f.record("FindDataByID")
	if f.FindDataByIDFunc != nil {
		return f.FindDataByIDFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.payloads[id]
	if !ok {
		return nil, audiodb.ErrDataNotFound
	}
	return data, nil
}

// FakeEventBus records published events instead of delivering them.
type FakeEventBus struct {
	mu            sync.Mutex
	playRequested []audioevents.PlayRequestedPayload
	playFinished  []audioevents.PlayFinishedPayload
	PublishReqErr error
}

var _ eventbus.EventBus = (*FakeEventBus)(nil)

func (f *FakeEventBus) PublishPlayRequested(ctx context.Context, payload audioevents.PlayRequestedPayload) error {
	if f.PublishReqErr != nil {
		return f.PublishReqErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playRequested = append(f.playRequested, payload)
	return nil
}

func (f *FakeEventBus) PublishPlayFinished(ctx context.Context, payload audioevents.PlayFinishedPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playFinished = append(f.playFinished, payload)
	return nil
}

func (f *FakeEventBus) SubscribePlayRequested(ctx context.Context, handler eventbus.PlayRequestedHandler) error {
	return nil
}

func (f *FakeEventBus) SubscribePlayFinished(ctx context.Context, handler eventbus.PlayFinishedHandler) error {
	return nil
}

func (f *FakeEventBus) Close() error { return nil }

func (f *FakeEventBus) PlayRequested() []audioevents.PlayRequestedPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]audioevents.PlayRequestedPayload, len(f.playRequested))
	copy(out, f.playRequested)
	return out
}

func newTestService(repo *FakeAudioRepository, bus *FakeEventBus) *AudioService {
	if bus == nil {
		bus = &FakeEventBus{}
	}
	return NewAudioService(repo, &FakeDB{}, bus, nil, nil, nil)
}
