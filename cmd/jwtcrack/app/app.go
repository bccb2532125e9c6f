package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/crackerservice"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/progress"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/verifier"
	"github.com/gx0r/jwt-secret-finder/internal/token"
	"github.com/gx0r/jwt-secret-finder/pkg/logging"
)

// newVerifier is replaced in tests.
var newVerifier crackerservice.VerifierProvider = func(signingInput, targetTag []byte) cracker.Verifier {
	return verifier.NewHMACSHA256(signingInput, targetTag)
}

type options struct {
	cfgPath    string
	token      string
	alphabet   string
	maxLength  int
	workers    int
	progress   bool
	logLevel   string
	logJSON    bool
	cpuProfile string
}

func New() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "jwtcrack",
		Short:         "Recover the HMAC-SHA256 secret of a JWT by brute force",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	defaults := DefaultConfig()

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.cfgPath, "config", "c", "", "path to configuration file")
	flags.StringVarP(&opts.token, "token", "t", defaults.Search.Token, "HS256 JWT to crack")
	flags.StringVarP(&opts.alphabet, "alphabet", "a", defaults.Search.Alphabet, "characters to build candidate secrets from")
	flags.IntVarP(&opts.maxLength, "maxlength", "x", defaults.Search.MaxLength, "maximum secret length to try")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "number of workers per length, 0 uses every CPU")
	flags.BoolVarP(&opts.progress, "progress", "p", false, "draw a progress bar on stderr")
	flags.StringVar(&opts.logLevel, "log-level", defaults.Logger.Level, "log level: debug, info, warn or error")
	flags.BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON")
	flags.StringVar(&opts.cpuProfile, "cpuprofile", "", "directory to write a CPU profile to")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("validate config failed", slog.Any("error", err))
		return err
	}

	logging.InitLogger(cfg.Logger, slog.String("service", "jwtcrack"))

	tok, err := token.Parse(cfg.Search.Token)
	if err != nil {
		slog.Error("parse token failed", slog.Any("error", err))
		return err
	}

	if alg := tok.Algorithm(); alg != token.AlgHMAC256 {
		slog.Warn("token is not signed with HS256, the search is unlikely to succeed", slog.String("alg", alg))
	}

	if size := len(tok.Signature()); size != verifier.TagSize {
		slog.Warn("signature has unexpected length",
			slog.Int("size", size),
			slog.Int("expected", verifier.TagSize),
		)
	}

	alphabet := cracker.NormalizeAlphabet(cfg.Search.Alphabet)
	if len(alphabet) != len(cfg.Search.Alphabet) {
		slog.Warn("alphabet contains repeated characters, duplicates dropped",
			slog.Int("given", len(cfg.Search.Alphabet)),
			slog.Int("distinct", len(alphabet)),
		)
	}

	if opts.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.cpuProfile), profile.Quiet).Stop()
	}

	var notifier progress.Notifier
	if cfg.Cracker.Progress {
		notifier = progress.NewBarNotifier(cmd.ErrOrStderr())
	} else {
		notifier = progress.NewLogNotifier(slog.Default())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := crackerservice.NewService(cfg.Cracker, newVerifier, notifier)

	result, err := service.Crack(ctx, &cracker.Task{
		Alphabet:     alphabet,
		MaxLength:    cfg.Search.MaxLength,
		SigningInput: tok.SigningInput(),
		TargetTag:    tok.Signature(),
	})
	if err != nil {
		return err
	}

	if !result.Found() {
		return cracker.ErrSecretNotFound
	}

	slog.Info("secret found",
		slog.String("run_id", result.RunID.String()),
		slog.Uint64("attempts", result.Attempts),
		slog.Duration("elapsed", result.Elapsed),
	)

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(result.Secret))
	return err
}

// loadConfig builds the effective configuration: defaults, then the config
// file if given, then flags set explicitly on the command line.
func loadConfig(cmd *cobra.Command, opts *options) (*Config, error) {
	cfg := DefaultConfig()

	if opts.cfgPath != "" {
		slog.Info("parsing config...", slog.String("path", opts.cfgPath))

		loaded, err := LoadConfig(opts.cfgPath)
		if err != nil {
			slog.Error("load config failed", slog.Any("error", err))
			return nil, err
		}

		cfg = loaded
	}

	if cfg.Logger == nil || cfg.Search == nil || cfg.Cracker == nil {
		return cfg, nil
	}

	flags := cmd.Flags()
	if flags.Changed("token") {
		cfg.Search.Token = opts.token
	}
	if flags.Changed("alphabet") {
		cfg.Search.Alphabet = opts.alphabet
	}
	if flags.Changed("maxlength") {
		cfg.Search.MaxLength = opts.maxLength
	}
	if flags.Changed("workers") {
		cfg.Cracker.Workers = opts.workers
	}
	if flags.Changed("progress") {
		cfg.Cracker.Progress = opts.progress
	}
	if flags.Changed("log-level") {
		cfg.Logger.Level = opts.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Logger.IsJSON = opts.logJSON
	}

	return cfg, nil
}
