package userdb

import (
	"github.com/uptrace/bun"

	userdomain "github.com/soundcord/soundcord-bot/app/modules/user/domain"
)

// User is the row shape for the users table. Audio preferences are flattened
// into columns; favorites is a Postgres text array.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          string   `bun:"id,pk"`
	Username    string   `bun:"username,notnull"`
	DisplayName string   `bun:"display_name,notnull"`
	Avatar      *string  `bun:"avatar"`
	Provider    string   `bun:"provider,notnull"`
	EntryAudio  *string  `bun:"entry_audio"`
	Volume      int      `bun:"volume,notnull"`
	PlayOnEntry bool     `bun:"play_on_entry,notnull"`
	Favorites   []string `bun:"favorites,array"`
}

// toRow maps the entity onto the row shape. Purely structural.
func toRow(u *userdomain.User) *User {
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Provider:    u.Provider,
		EntryAudio:  u.AudioPreferences.EntryAudio,
		Volume:      u.AudioPreferences.Volume,
		PlayOnEntry: u.AudioPreferences.PlayOnEntry,
		Favorites:   u.AudioPreferences.Favorites,
	}
}

// toEntity rehydrates the entity from a row.
func toEntity(row *User) *userdomain.User {
	favorites := row.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return userdomain.Rehydrate(
		row.ID,
		row.Provider,
		row.Username,
		row.DisplayName,
		row.Avatar,
		userdomain.AudioPreferences{
			EntryAudio:  row.EntryAudio,
			Volume:      row.Volume,
			PlayOnEntry: row.PlayOnEntry,
			Favorites:   favorites,
		},
	)
}
