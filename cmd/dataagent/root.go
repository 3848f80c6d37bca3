package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/dataagent/kernel"
)

// options holds persistent flags. Non-empty values override the config
// file.
type options struct {
	configFile string
	envFile    string
	provider   string
	model      string
	baseURL    string
	driver     string
	dsn        string
	notes      string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var noInteractive bool

	cmd := &cobra.Command{
		Use:   "dataagent",
		Short: "Ask questions about a sales database with a local model",
		Long: `dataagent lets a local language model decide whether to run a read-only
SQL query against the sales database before answering a question.

Without a subcommand it answers the built-in example question and then
starts an interactive prompt. Type quit, exit or q to leave.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := opts.kernel()
			if err != nil {
				return err
			}
			defer k.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Data Agent"))
			fmt.Fprintln(out, mutedStyle.Render("session "+k.SessionID()))
			fmt.Fprintln(out)

			answer(cmd.Context(), out, k, defaultExample)

			if noInteractive {
				return nil
			}
			return interactive(cmd.Context(), cmd.InOrStdin(), out, k)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to a JSON or YAML config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before config")
	flags.StringVarP(&opts.provider, "provider", "p", "", "Inference provider: openai or command (overrides config)")
	flags.StringVarP(&opts.model, "model", "m", "", "Model name (overrides config)")
	flags.StringVar(&opts.baseURL, "base-url", "", "OpenAI-compatible endpoint (overrides config)")
	flags.StringVar(&opts.driver, "driver", "", "Dataset driver: sqlite3 or postgres (overrides config)")
	flags.StringVar(&opts.dsn, "dsn", "", "Dataset connection string (overrides config)")
	flags.StringVar(&opts.notes, "notes", "", "Context notes directory (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging to stderr")

	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Exit after the example question")

	cmd.AddCommand(
		newAskCmd(opts),
		newSchemaCmd(opts),
		newSummaryCmd(opts),
		newExamplesCmd(opts),
		newSeedCmd(),
		newNotesCmd(opts),
	)
	return cmd
}

// setup loads the env file and installs the stderr logger.
func (o *options) setup() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", o.envFile, err)
		}
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

// config loads the config file, or defaults when none is given, and
// applies flag overrides.
func (o *options) config() (*kernel.Config, error) {
	var cfg *kernel.Config
	if o.configFile != "" {
		loaded, err := kernel.LoadConfig(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		defaults := kernel.DefaultConfig()
		cfg = &defaults
	}

	overrides := &kernel.Config{}
	overrides.Agent.Provider = o.provider
	overrides.Agent.Model = o.model
	overrides.Agent.BaseURL = o.baseURL
	overrides.Agent.APIKey = os.Getenv("OPENAI_API_KEY")
	overrides.Dataset.Driver = o.driver
	overrides.Dataset.DSN = o.dsn
	overrides.Memory.Path = o.notes
	cfg.Merge(overrides)

	return cfg, nil
}

func (o *options) kernel() (*kernel.Kernel, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	k, err := kernel.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kernel: %w", err)
	}
	return k, nil
}
