package audiodb

import (
	"time"

	"github.com/uptrace/bun"

	audiodomain "github.com/soundcord/soundcord-bot/app/modules/audio/domain"
)

// AudioCommand is the row shape for the audio_commands table.
type AudioCommand struct {
	bun.BaseModel `bun:"table:audio_commands,alias:ac"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	Format    string    `bun:"format,notnull"`
	Size      int64     `bun:"size,notnull"`
	CreatedBy string    `bun:"created_by,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// AudioData is the row shape for the audio_data table, keyed 1:1 by the
// command id and cascade-deleted with it.
type AudioData struct {
	bun.BaseModel `bun:"table:audio_data,alias:ad"`

	ID   string `bun:"id,pk"`
	Data []byte `bun:"data,notnull,type:bytea"`
}

func toRow(cmd *audiodomain.AudioCommand) *AudioCommand {
	return &AudioCommand{
		ID:        cmd.ID,
		Name:      cmd.Name,
		Format:    string(cmd.Format),
		Size:      cmd.Size,
		CreatedBy: cmd.CreatedBy,
		CreatedAt: cmd.CreatedAt,
		UpdatedAt: cmd.UpdatedAt,
	}
}

func toEntity(row *AudioCommand) *audiodomain.AudioCommand {
	return audiodomain.Rehydrate(
		row.ID,
		row.Name,
		audiodomain.Format(row.Format),
		row.Size,
		row.CreatedBy,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
