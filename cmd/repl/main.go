// Command relal-repl builds SQL statements interactively and can run them
// against PostgreSQL, MySQL or SQLite.
//
// Configuration is read from ~/.relal.yaml (or --config), then the
// RELAL_ENGINE and DATABASE_URL environment variables, then flags.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"
)

const mainPrompt = "relal> "

type rootOptions struct {
	engine  string
	dsn     string
	config  string
	history string
	verbose bool
	format  bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "relal-repl",
		Short:         "Interactive relational algebra SQL builder",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg, newLogger(cmd.ErrOrStderr(), opts.verbose))
		},
	}

	cmd.Flags().StringVar(&opts.engine, "engine", "", "SQL dialect (postgres|mysql|sqlite)")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "connect to this database on start")
	cmd.Flags().StringVar(&opts.config, "config", defaultConfigPath(), "path to the YAML config file")
	cmd.Flags().StringVar(&opts.history, "history", "", "history file (default ~/.relal_history)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().BoolVar(&opts.format, "format", false, "pretty-print generated SQL")
	return cmd
}

// resolveConfig loads the config file and applies flags that were set.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (Config, error) {
	cfg, err := loadConfig(opts.config, cmd.Flags().Changed("config"), os.Getenv)
	if err != nil {
		return Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine = opts.engine
	}
	if flags.Changed("dsn") {
		cfg.DSN = opts.dsn
	}
	if flags.Changed("history") {
		cfg.HistoryFile = opts.history
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	return cfg.withDefaults()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}

func run(cfg Config, log *slog.Logger) error {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          mainPrompt,
		HistoryFile:     cfg.HistoryFile,
		HistoryLimit:    cfg.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sess, err := NewSession(cfg, rl, log)
	if err != nil {
		return err
	}
	if err := rl.SetConfig(&readline.Config{
		Prompt:          mainPrompt,
		HistoryFile:     cfg.HistoryFile,
		HistoryLimit:    cfg.HistoryLimit,
		AutoComplete:    &replCompleter{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}); err != nil {
		return fmt.Errorf("readline config: %w", err)
	}
	defer func() {
		if sess.conn != nil {
			_ = sess.conn.close()
		}
	}()

	log.Debug("session started", "engine", cfg.Engine, "history", cfg.HistoryFile)
	if cfg.DSN != "" {
		if err := sess.connectWithDSN(cfg.DSN); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
		}
	}

	fmt.Printf("relal (%s). Type 'help' for commands, 'exit' to quit.\n", sess.engine)
	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if lower := strings.ToLower(line); lower == "exit" || lower == "quit" {
			break
		}
		if err := sess.Execute(line); err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		}
	}
	fmt.Println()
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "relal-repl: %v\n", err)
		os.Exit(1)
	}
}
