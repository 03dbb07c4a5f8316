package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/orders/internal/core"
)

// runE is the signature of a cobra RunE function.
type runE func(cmd *cobra.Command, args []string) error

// userErrors wraps command failures with their user-facing message.
func userErrors(run runE) runE {
	return func(cmd *cobra.Command, args []string) error {
		if err := run(cmd, args); err != nil {
			return core.NewUserError(err)
		}
		return nil
	}
}

// logFailure reports a failed run. Known failures are logged as
// "Message (Code: X). Action"; anything else keeps the technical error as
// the message so it is not hidden behind the generic text.
func logFailure(logger *slog.Logger, err error) {
	var uerr *core.UserError
	if !errors.As(err, &uerr) {
		uerr = core.NewUserError(err)
	}

	if core.IsUserFacing(uerr.Err) {
		logger.Error(core.FormatUserError(uerr.Err), "code", uerr.Code, "error", uerr.Err)
		return
	}
	logger.Error(uerr.Err.Error(), "code", uerr.Code, "action", uerr.Action)
}
