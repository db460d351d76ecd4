package audioservice

import (
	"errors"

	"github.com/soundcord/soundcord-bot/app/shared/faults"
)

// AsFault translates an audio service error into the external fault taxonomy.
func AsFault(err error) *faults.Fault {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNameTaken):
		return faults.Conflict("audio command name already taken", err)
	case errors.Is(err, ErrAudioNotFound):
		return faults.NotFound("audio command not found", err)
	default:
		return faults.Internal("internal error", err)
	}
}
