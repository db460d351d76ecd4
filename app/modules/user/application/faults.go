package userservice

import (
	"errors"

	"github.com/soundcord/soundcord-bot/app/shared/faults"
)

// AsFault translates a user service error into the external fault taxonomy.
// Anything that is not a known domain outcome becomes an opaque internal
// fault; storage detail never crosses the service seam.
func AsFault(err error) *faults.Fault {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUsernameTaken):
		return faults.Conflict("username already taken", err)
	case errors.Is(err, ErrUserNotFound):
		return faults.NotFound("user not found", err)
	default:
		return faults.Internal("internal error", err)
	}
}
