package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/boxoffice/config"
	"github.com/s0up4200/boxoffice/counter"
	"github.com/s0up4200/boxoffice/kobis"
	"github.com/s0up4200/boxoffice/movie"
)

var (
	cfgFile     string
	logLevel    string
	cfg         *config.Config
	logger      zerolog.Logger
	kobisClient *kobis.Client
	loader      *movie.Loader
	count       *counter.Subject

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "boxoffice",
	Short: "A small web frontend for the KOBIS movie database",
	Long: `boxoffice fetches the movie listing and movie details from the KOBIS
(Korean Film Council) open API and serves them as web pages, or prints them
on the command line.

The API key is read from the MOVIE_KEY environment variable (or a .env file).`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version reported by --version
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration, logger, client and shared state
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		level := strings.ToLower(logLevel)
		if !config.ValidLogLevel(level) {
			return fmt.Errorf("invalid --log-level: %s (must be debug, info, warn or error)", logLevel)
		}
		cfg.Logging.Level = level
	}

	// Setup logger
	logger = setupLogger(cfg.Logging, os.Stderr)

	if cfg.Kobis.APIKey == "" {
		logger.Warn().Msgf("%s is not set, KOBIS will reject requests", config.APIKeyEnv)
	}

	opts := []kobis.Option{kobis.WithTimeout(cfg.Kobis.Timeout)}
	if cfg.Kobis.UserAgent != "" {
		opts = append(opts, kobis.WithUserAgent(cfg.Kobis.UserAgent))
	}

	// Create KOBIS client
	kobisClient, err = kobis.NewClient(cfg.Kobis.URL, cfg.Kobis.APIKey, logger.With().Str("component", "kobis").Logger(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create KOBIS client: %w", err)
	}

	loader = movie.NewLoader(kobisClient, logger.With().Str("component", "loader").Logger())
	count = counter.New(0)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
