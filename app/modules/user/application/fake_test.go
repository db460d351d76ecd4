package userservice

import (
	"context"
	"database/sql"
	"sync"

	"github.com/uptrace/bun"

	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
	userdb "github.com/soundcord/soundcord-bot/app/modules/user/infrastructure/repositories"
)

// FakeDB satisfies db.TxRunner by executing fn directly against an empty
// bun.Tx. Repository fakes ignore the handle, so no real database is touched.
type FakeDB struct{}

func (f *FakeDB) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(context.Context, bun.Tx) error) error {
	return fn(ctx, bun.Tx{})
}

// FakeUserRepository is an in-memory, programmable stub for userdb.Repository.
// Default behavior stores users in a map; per-method Func fields override it.
type FakeUserRepository struct {
	mu    sync.Mutex
	users map[string]userdomain.User
	trace []string

	CreateFunc         func(ctx context.Context, db bun.IDB, user *userdomain.User) error
	UpdateFunc         func(ctx context.Context, db bun.IDB, user *userdomain.User) error
	FindByIDFunc       func(ctx context.Context, db bun.IDB, id string) (*userdomain.User, error)
	FindByUsernameFunc func(ctx context.Context, db bun.IDB, username string) (*userdomain.User, error)
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{users: map[string]userdomain.User{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeUserRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Stored returns a copy of the stored user, if any.
func (f *FakeUserRepository) Stored(id string) (userdomain.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	return u, ok
}

// Seed inserts a user without recording a trace entry.
func (f *FakeUserRepository) Seed(user userdomain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func (f *FakeUserRepository) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, call)
}

func (f *FakeUserRepository) Create(ctx context.Context, db bun.IDB, user *userdomain.User) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, user)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = *user
	return nil
}

func (f *FakeUserRepository) Update(ctx context.Context, db bun.IDB, user *userdomain.User) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, user)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return userdb.ErrNotFound
	}
	f.users[user.ID] = *user
	return nil
}

func (f *FakeUserRepository) FindByID(ctx context.Context, db bun.IDB, id string) (*userdomain.User, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, userdb.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (f *FakeUserRepository) FindByUsername(ctx context.Context, db bun.IDB, username string) (*userdomain.User, error) {
	f.record("FindByUsername")
	if f.FindByUsernameFunc != nil {
		return f.FindByUsernameFunc(ctx, db, username)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, userdb.ErrNotFound
}

func newTestService(repo *FakeUserRepository) *UserService {
	return NewUserService(repo, &FakeDB{}, nil, nil, nil)
}
