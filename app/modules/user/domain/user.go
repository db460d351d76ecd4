package userdomain

import "errors"

// ErrEmptyID indicates a user was constructed without a provider identifier.
var ErrEmptyID = errors.New("user id cannot be empty")

const (
	// DefaultVolume is the playback volume assigned to new users.
	DefaultVolume = 100
)

// AudioPreferences holds a user's soundboard playback settings.
type AudioPreferences struct {
	EntryAudio  *string
	Volume      int
	PlayOnEntry bool
	Favorites   []string
}

// AudioPreferencesInput carries optional preference overrides at user
// creation. Unset fields take the defaults.
type AudioPreferencesInput struct {
	EntryAudio  *string
	Volume      *int
	PlayOnEntry *bool
	Favorites   []string
}

// User is the soundboard account for one external-provider identity.
// The ID is the provider's stable identifier and is never generated locally;
// ID and Provider are immutable after construction.
type User struct {
	ID               string
	Provider         string
	Username         string
	DisplayName      string
	Avatar           *string
	AudioPreferences AudioPreferences
}

// CreateProps are the attributes for constructing a User.
type CreateProps struct {
	ID               string
	Provider         string
	Username         string
	DisplayName      string
	Avatar           *string
	AudioPreferences *AudioPreferencesInput
}

// Patch is a partial update to a User. Only non-nil fields overwrite;
// AudioPreferences replaces the whole preference block when present.
type Patch struct {
	Username         *string
	DisplayName      *string
	Avatar           *string
	AudioPreferences *AudioPreferences
}

// NewUser constructs a User for a first login, merging the given preference
// overrides into the defaults (nil entry audio, volume 100, play-on-entry off,
// no favorites).
func NewUser(props CreateProps) (*User, error) {
	if props.ID == "" {
		return nil, ErrEmptyID
	}

	prefs := AudioPreferences{
		EntryAudio:  nil,
		Volume:      DefaultVolume,
		PlayOnEntry: false,
		Favorites:   []string{},
	}
	if in := props.AudioPreferences; in != nil {
		if in.EntryAudio != nil {
			prefs.EntryAudio = in.EntryAudio
		}
		if in.Volume != nil {
			prefs.Volume = *in.Volume
		}
		if in.PlayOnEntry != nil {
			prefs.PlayOnEntry = *in.PlayOnEntry
		}
		if in.Favorites != nil {
			prefs.Favorites = in.Favorites
		}
	}

	return &User{
		ID:               props.ID,
		Provider:         props.Provider,
		Username:         props.Username,
		DisplayName:      props.DisplayName,
		Avatar:           props.Avatar,
		AudioPreferences: prefs,
	}, nil
}

// Rehydrate reconstructs a User from stored attributes without applying
// creation defaults.
func Rehydrate(id, provider, username, displayName string, avatar *string, prefs AudioPreferences) *User {
	return &User{
		ID:               id,
		Provider:         provider,
		Username:         username,
		DisplayName:      displayName,
		Avatar:           avatar,
		AudioPreferences: prefs,
	}
}

// ApplyPatch overwrites only the fields present in the patch. ID and Provider
// cannot be changed.
func (u *User) ApplyPatch(p Patch) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Avatar != nil {
		u.Avatar = p.Avatar
	}
	if p.AudioPreferences != nil {
		u.AudioPreferences = *p.AudioPreferences
	}
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return p.Username == nil && p.DisplayName == nil && p.Avatar == nil && p.AudioPreferences == nil
}
