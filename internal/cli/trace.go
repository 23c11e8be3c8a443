package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/regbits/internal/trace"
)

// TraceData is the JSON payload for trace listings.
type TraceData struct {
	Sessions []string      `json:"sessions,omitempty"`
	Events   []trace.Event `json:"events,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <trace.db> [session-id]",
		Short: "Inspect a register access trace",
		Long: `List the sessions in an access trace database, or the load/store
events of one session in sequence order.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := ""
			if len(args) == 2 {
				session = args[1]
			}
			return runTrace(rootOpts, args[0], session, cmd)
		},
	}

	return cmd
}

func runTrace(opts *RootOptions, path, session string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(path); err != nil {
		return formatter.Failure(ExitCommandError, "NOT_FOUND", fmt.Sprintf("trace database: %v", err))
	}

	store, err := trace.Open(path)
	if err != nil {
		return formatter.Failure(ExitCommandError, "OPEN", err.Error())
	}
	defer store.Close()

	ctx := context.Background()

	if session == "" {
		sessions, err := store.Sessions(ctx)
		if err != nil {
			return formatter.Failure(ExitFailure, "READ", err.Error())
		}
		if formatter.Format == "json" {
			return formatter.JSON(CLIResponse{Status: "ok", Data: TraceData{Sessions: sessions}})
		}
		for _, id := range sessions {
			formatter.Text("%s", id)
		}
		return nil
	}

	events, err := store.Events(ctx, session)
	if err != nil {
		return formatter.Failure(ExitFailure, "READ", err.Error())
	}
	if len(events) == 0 {
		return formatter.Failure(ExitCommandError, "NO_SESSION", fmt.Sprintf("no events for session %s", session))
	}

	if formatter.Format == "json" {
		return formatter.JSON(CLIResponse{Status: "ok", Data: TraceData{Events: events}})
	}
	for _, e := range events {
		formatter.Text("%4d  %-8s %-5s %#x", e.Seq, e.Register, e.Op, e.Value)
	}
	return nil
}
