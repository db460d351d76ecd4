package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userservice "github.com/soundcord/soundcord-bot/app/modules/user/application"
	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
	"github.com/soundcord/soundcord-bot/app/shared/faults"
)

// fakeUserService is a programmable stub for the user use cases.
type fakeUserService struct {
	users map[string]*userdomain.User
	trace []string

	createErr error
	updateErr error
	getErr    error
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: map[string]*userdomain.User{}}
}

func (f *fakeUserService) CreateUser(ctx context.Context, props userdomain.CreateProps) (*userdomain.User, error) {
	f.trace = append(f.trace, "CreateUser")
	if f.createErr != nil {
		return nil, f.createErr
	}
	user, err := userdomain.NewUser(props)
	if err != nil {
		return nil, err
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserService) UpdateUser(ctx context.Context, id string, patch userdomain.Patch) (*userdomain.User, error) {
	f.trace = append(f.trace, "UpdateUser")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	user.ApplyPatch(patch)
	return user, nil
}

func (f *fakeUserService) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	f.trace = append(f.trace, "GetUser")
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return user, nil
}

func newTestAuthService(users *fakeUserService) *AuthService {
	return NewAuthService(users, nil, nil, "test-secret", time.Hour)
}

func seedUser(t *testing.T, users *fakeUserService, id, username string) *userdomain.User {
	t.Helper()
	user, err := users.CreateUser(context.Background(), userdomain.CreateProps{
		ID:       id,
		Provider: "discord",
		Username: username,
	})
	require.NoError(t, err)
	users.trace = nil
	return user
}

func TestValidateOrCreateUser_CreatesOnFirstLogin(t *testing.T) {
	users := newFakeUserService()
	svc := newTestAuthService(users)

	user, err := svc.ValidateOrCreateUser(context.Background(), Profile{
		ID:          "discord-1",
		Provider:    "discord",
		Username:    "alice",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "discord-1", user.ID)
	assert.Equal(t, []string{"GetUser", "CreateUser"}, users.trace)
}

func TestValidateOrCreateUser_NoWriteWhenUnchanged(t *testing.T) {
	users := newFakeUserService()
	svc := newTestAuthService(users)
	seedUser(t, users, "discord-1", "alice")

	user, err := svc.ValidateOrCreateUser(context.Background(), Profile{
		ID:       "discord-1",
		Provider: "discord",
		Username: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, []string{"GetUser"}, users.trace, "unchanged profile skips the update")
}

func TestValidateOrCreateUser_PatchesChangedFields(t *testing.T) {
	users := newFakeUserService()
	svc := newTestAuthService(users)
	seedUser(t, users, "discord-1", "alice")

	avatar := "https://cdn.example/alice.png"
	user, err := svc.ValidateOrCreateUser(context.Background(), Profile{
		ID:       "discord-1",
		Provider: "discord",
		Username: "alice_renamed",
		Avatar:   &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice_renamed", user.Username)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, avatar, *user.Avatar)
	assert.Equal(t, []string{"GetUser", "UpdateUser"}, users.trace)
}

func TestValidateOrCreateUser_ConflictBecomesFault(t *testing.T) {
	users := newFakeUserService()
	svc := newTestAuthService(users)
	seedUser(t, users, "discord-1", "alice")
	users.updateErr = userservice.ErrUsernameTaken

	_, err := svc.ValidateOrCreateUser(context.Background(), Profile{
		ID:       "discord-1",
		Provider: "discord",
		Username: "taken",
	})
	require.Error(t, err)
	assert.Equal(t, faults.KindConflict, faults.KindOf(err))
}

func TestValidateOrCreateUser_LookupFailureIsInternal(t *testing.T) {
	users := newFakeUserService()
	svc := newTestAuthService(users)
	users.getErr = errors.New("connection reset")

	_, err := svc.ValidateOrCreateUser(context.Background(), Profile{ID: "discord-1"})
	require.Error(t, err)
	assert.Equal(t, faults.KindInternal, faults.KindOf(err))
	assert.NotContains(t, err.Error(), "connection reset", "storage detail stays behind the seam")
}

func TestSessionTokenRoundTrip(t *testing.T) {
	users := newFakeUserService()
	svc := newTestAuthService(users)
	user := seedUser(t, users, "discord-1", "alice")

	token, err := svc.IssueSessionToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "discord-1", subject)
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	users := newFakeUserService()
	user := seedUser(t, users, "discord-1", "alice")

	issuer := newTestAuthService(users)
	token, err := issuer.IssueSessionToken(user)
	require.NoError(t, err)

	verifier := NewAuthService(users, nil, nil, "other-secret", time.Hour)
	_, err = verifier.VerifySessionToken(token)
	assert.Error(t, err)
}

func TestVerifySessionToken_Garbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserService())

	_, err := svc.VerifySessionToken("not-a-token")
	assert.Error(t, err)
}
