package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"decorate/config"
	"decorate/internal/adapter/names"
	"decorate/internal/adapter/rewriter"
	"decorate/internal/adapter/source"
	"decorate/internal/domain"
	"decorate/internal/logging"
	"decorate/internal/usecase"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X decorate/internal/cli.Version=...".
var Version = "dev"

// ErrUsage reports a wrong number of positional arguments.
var ErrUsage = errors.New("usage")

var (
	cfgFile string
	cfg     *config.Config
	marker  string
	dryRun  bool
	verbose bool
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "decorate <source-path> <name-list-path>",
	Short: "Mark hot C functions with a placement macro",
	Long: `Decorate rewrites a C source file in place. Every line of the exact form

  static void NAME(void)

whose NAME appears in the name list (one name per line) becomes

  static void M68K_FAST_FUNC(NAME)(void) /* In SRAM */

All other lines are left byte for byte as they were.

Example usage:
  decorate m68kops.c fast_funcs.txt             # Rewrite m68kops.c
  decorate --dry-run m68kops.c fast_funcs.txt   # Show what would change
  decorate walk src fast_funcs.txt              # Rewrite every .c file below src`,
	Version: Version,
	Args:    exactArgs(2),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			var wd string
			wd, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("marker") {
			cfg.Decorate.Marker = marker
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		level, _ := logging.ParseLevel(cfg.Logging.Level)
		if verbose {
			level = slog.LevelDebug
		}
		logger = logging.New(cmd.ErrOrStderr(), level)

		return nil
	},
	RunE: runDecorate,
}

// ExecuteContext runs the command tree. Errors have already been printed.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./decorate.yaml)")
	rootCmd.PersistentFlags().StringVar(&marker, "marker", rewriter.DefaultMarker, "macro wrapped around decorated names")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "report declarations that would be decorated without writing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s", ErrUsage, cmd.UseLine())
		}
		return nil
	}
}

func newDecorateUseCase() *usecase.DecorateUseCase {
	return usecase.NewDecorateUseCase(
		names.NewFileLoader(),
		source.NewFileStore(cfg.Write.Atomic),
		rewriter.NewDeclRewriter(cfg.Decorate.Marker, cfg.Decorate.Comment),
		logger,
	)
}

func runDecorate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	srcPath, listPath := args[0], args[1]

	decorateUC := newDecorateUseCase()

	set, err := decorateUC.LoadNames(listPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Read %d functions\n", set.Len())

	result, err := decorateUC.DecorateFile(srcPath, set, dryRun)
	if err != nil {
		return err
	}

	if dryRun {
		printMatches(out, result)
		return nil
	}

	logger.Info("decorated source", "path", result.Path, "lines", result.Lines, "decorated", len(result.Matches))
	return nil
}

func printMatches(w io.Writer, r *domain.FileResult) {
	for _, m := range r.Matches {
		fmt.Fprintf(w, "%s:%d: %s\n", r.Path, m.Line, m.Name)
	}
}
