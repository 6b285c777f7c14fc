// Package cli is the operator command line for the complaint store.
package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"complaint-service/internal/model"
	"complaint-service/internal/service"
)

// Backend is what the commands operate on.
type Backend struct {
	Complaints *service.ComplaintService
	Statistics *service.StatisticsService
}

// OpenFunc connects to the store. The returned close func is always non-nil on success.
type OpenFunc func(ctx context.Context) (*Backend, func(), error)

type RootOptions struct {
	Format string // "json" | "text"

	open    OpenFunc
	backend *Backend
	close   func()
}

var ValidFormats = []string{"text", "json"}

// operator is the principal every CLI command acts as.
var operator = model.Principal{UserID: uuid.Nil, Role: model.UserRoleComplaintAdmin}

func NewRootCommand(open OpenFunc) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "complaint-admin",
		Short:         "Inspect and manage resident complaints",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !needsBackend(cmd) {
				return nil
			}
			backend, closeFn, err := opts.open(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open store", err)
			}
			opts.backend = backend
			opts.close = closeFn
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newNotesCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newListCommand(opts))

	// PersistentPostRun is skipped when RunE fails; close from the command itself.
	for _, sub := range cmd.Commands() {
		run := sub.RunE
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			defer opts.closeBackend()
			return run(cmd, args)
		}
	}

	return cmd
}

func (o *RootOptions) closeBackend() {
	if o.close != nil {
		o.close()
		o.close = nil
	}
	o.backend = nil
}

// needsBackend is false for cobra's help and shell completion commands.
func needsBackend(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
