package audiodomain

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
)

// Format is the container format of an uploaded clip.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
)

// IsValid reports whether f is a supported audio format.
func (f Format) IsValid() bool {
	switch f {
	case FormatMP3, FormatWAV:
		return true
	}
	return false
}

const (
	MinNameLength = 3
	MaxNameLength = 25
)

var (
	// ErrInvalidName indicates a command name outside the allowed length.
	ErrInvalidName = fmt.Errorf("audio command name must be between %d and %d characters", MinNameLength, MaxNameLength)

	// ErrInvalidFormat indicates an unsupported audio format.
	ErrInvalidFormat = errors.New("audio format must be mp3 or wav")

	// ErrEmptyPayload indicates an upload with no audio bytes.
	ErrEmptyPayload = errors.New("audio payload cannot be empty")
)

// AudioCommand is the metadata for one uploaded clip. The binary payload is
// stored separately, keyed by ID. Only the name is mutable after creation.
type AudioCommand struct {
	ID        string
	Name      string
	Format    Format
	Size      int64
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAudioCommand constructs a command for a fresh upload, generating a
// time-ordered id and creation timestamps. Size is the payload byte length,
// derived by the caller from the upload itself.
func NewAudioCommand(name string, format Format, size int64, createdBy string) (*AudioCommand, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if size <= 0 {
		return nil, ErrEmptyPayload
	}

	now := time.Now().UTC()
	return &AudioCommand{
		ID:        xid.New().String(),
		Name:      name,
		Format:    format,
		Size:      size,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rehydrate reconstructs a command from stored attributes.
func Rehydrate(id, name string, format Format, size int64, createdBy string, createdAt, updatedAt time.Time) *AudioCommand {
	return &AudioCommand{
		ID:        id,
		Name:      name,
		Format:    format,
		Size:      size,
		CreatedBy: createdBy,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Rename changes the command name and touches the update timestamp. The name
// is the only mutable attribute.
func (a *AudioCommand) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	a.Name = name
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func validateName(name string) error {
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}
