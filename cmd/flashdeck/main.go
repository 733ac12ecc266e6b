package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/flashdeck/internal/app"
	"github.com/five82/flashdeck/internal/mockserver"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "flashdeck: %v\n", err)
		return 1
	}
	return 0
}

// rootState carries the persistent flags and the Env built from them.
type rootState struct {
	opts app.Options
	env  *app.Env
}

func newRootCommand() *cobra.Command {
	state := &rootState{}
	root := &cobra.Command{
		Use:           "flashdeck [file.pdf]",
		Short:         "Turn a PDF into flashcards and review them in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return state.env.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := state.opts
			if len(args) == 1 {
				opts.InitialFile = args[0]
			}
			return app.Run(cmd.Context(), state.env, opts)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&state.opts.ConfigPath, "config", "", "config file path (default ~/.config/flashdeck/config.toml)")
	flags.StringVar(&state.opts.APIBase, "api", "", "backend API base URL, overrides api_base")
	flags.BoolVar(&state.opts.Debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newHealthCommand(state),
		newGenerateCommand(state),
		newMockServerCommand(),
	)
	return root
}

// setup builds the shared Env and makes its logger the default.
func (s *rootState) setup() error {
	env, err := app.Setup(s.opts)
	if err != nil {
		return err
	}
	s.env = env
	slog.SetDefault(env.Logger)
	return nil
}

func newHealthCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Health(cmd.Context(), state.env, cmd.OutOrStdout())
		},
	}
}

func newGenerateCommand(state *rootState) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "generate <file.pdf>",
		Short: "Generate flashcards from a PDF and print them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Generate(cmd.Context(), state.env, app.GenerateOptions{
				Path: args[0],
				JSON: asJSON,
				Out:  cmd.OutOrStdout(),
				Err:  cmd.ErrOrStderr(),
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the cards as JSON")
	return cmd
}

func newMockServerCommand() *cobra.Command {
	var (
		addr      string
		prefix    string
		delay     time.Duration
		status    int
		detail    string
		unhealthy bool
	)
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve a local stand-in for the flashcard backend",
		Args:  cobra.NoArgs,
		// The mock server logs to stderr and needs no config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			setupLogger(cmd, debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := mockserver.Options{
				Prefix: prefix,
				Delay:  delay,
				Status: status,
				Detail: detail,
			}
			if unhealthy {
				opts.HealthStatus = http.StatusServiceUnavailable
			}
			return app.ServeMock(cmd.Context(), addr, opts, slog.Default(), nil)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "127.0.0.1:8000", "listen address")
	flags.StringVar(&prefix, "prefix", "/api/v1", "route prefix")
	flags.DurationVar(&delay, "delay", 0, "delay before answering generate")
	flags.IntVar(&status, "status", 0, "force this HTTP status on generate")
	flags.StringVar(&detail, "detail", "", "detail text sent with --status")
	flags.BoolVar(&unhealthy, "unhealthy", false, "answer health checks with 503")
	return cmd
}

// setupLogger points the default logger at the command's stderr.
func setupLogger(cmd *cobra.Command, debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel})))
}
