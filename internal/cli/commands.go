package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"complaint-service/internal/model"
)

func newShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tracking-id>",
		Short: "Show a complaint with its contact number and status history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := opts.backend.Complaints.Get(cmd.Context(), operator, args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "show "+args[0], err)
			}
			return opts.printRecord(cmd, record)
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "status <tracking-id> <status>",
		Short: "Move a complaint forward in its lifecycle",
		Long: `Move a complaint forward in its lifecycle.

Statuses are New, "In Progress" and Completed. A complaint never moves back.

Examples:
  complaint-admin status ALE-5-7QK2M in_progress --notes "Technician assigned"
  complaint-admin status ALE-5-7QK2M Completed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var notesArg *string
			if cmd.Flags().Changed("notes") {
				notesArg = &notes
			}
			record, err := opts.backend.Complaints.UpdateStatus(cmd.Context(), operator, args[0], args[1], notesArg)
			if err != nil {
				return WrapExitError(ExitFailure, "update status of "+args[0], err)
			}
			return opts.printRecord(cmd, record)
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "note recorded with the status change")
	return cmd
}

func newNotesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <tracking-id> <text>",
		Short: "Replace the administrator notes of a complaint; empty text clears them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[1]
			record, err := opts.backend.Complaints.SetAdminNotes(cmd.Context(), operator, args[0], &text)
			if err != nil {
				return WrapExitError(ExitFailure, "set notes of "+args[0], err)
			}
			return opts.printRecord(cmd, record)
		},
	}
}

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print complaint statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := opts.backend.Statistics.Compute(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "compute statistics", err)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			return writeStatistics(cmd.OutOrStdout(), stats)
		},
	}
}

func newListCommand(opts *RootOptions) *cobra.Command {
	var (
		statuses []string
		types    []string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List complaints, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.ComplaintFilter{Limit: limit}
			for _, raw := range statuses {
				status, err := model.ParseComplaintStatus(raw)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid --status", err)
				}
				filter.Statuses = append(filter.Statuses, status)
			}
			for _, raw := range types {
				complaintType, ok := model.ParseComplaintType(raw)
				if !ok {
					return WrapExitError(ExitCommandError, "invalid --type", fmt.Errorf("unknown complaint type %q", raw))
				}
				filter.Types = append(filter.Types, complaintType)
			}

			records, err := opts.backend.Complaints.List(cmd.Context(), operator, filter)
			if err != nil {
				return WrapExitError(ExitFailure, "list complaints", err)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No complaints found.")
				return nil
			}
			return writeRecordTable(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "filter by status (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "filter by complaint type")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of complaints")
	return cmd
}

func (opts *RootOptions) printRecord(cmd *cobra.Command, record *model.AdminRecord) error {
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), record)
	}
	writeRecord(cmd.OutOrStdout(), record)
	return nil
}

