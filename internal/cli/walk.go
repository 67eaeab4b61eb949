package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"decorate/internal/adapter/fs"
	"decorate/internal/logging"
	"decorate/internal/usecase"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	walkIncludes []string
	walkExcludes []string
)

var walkCmd = &cobra.Command{
	Use:   "walk <root> <name-list-path>",
	Short: "Decorate every matching source file below a directory",
	Long: `Walk applies the same rewrite to every file below root that matches the
include patterns and none of the exclude patterns. Patterns use doublestar
syntax and are matched against slash-separated paths relative to root.
The name list is read once. The first failure stops the walk.

Examples:
  decorate walk . fast_funcs.txt
  decorate walk --include '**/m68kops.c' musashi fast_funcs.txt`,
	Args: exactArgs(2),
	RunE: runWalk,
}

func init() {
	rootCmd.AddCommand(walkCmd)
	walkCmd.Flags().StringSliceVar(&walkIncludes, "include", nil, "glob of files to rewrite (default from config)")
	walkCmd.Flags().StringSliceVar(&walkExcludes, "exclude", nil, "glob of files or directories to skip (default from config)")
}

func runWalk(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	includes := cfg.Walk.Includes
	if cmd.Flags().Changed("include") {
		includes = walkIncludes
	}
	excludes := cfg.Walk.Excludes
	if cmd.Flags().Changed("exclude") {
		excludes = walkExcludes
	}
	if err := fs.ValidatePatterns(append(append([]string{}, includes...), excludes...)); err != nil {
		return err
	}

	decorateUC := newDecorateUseCase()
	walkUC := usecase.NewWalkUseCase(fs.NewWalker(includes, excludes), decorateUC)

	set, err := decorateUC.LoadNames(args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Read %d functions\n", set.Len())
	logger.Debug("walking", "root", root, "includes", includes, "excludes", excludes)

	var progress usecase.ProgressCallback
	if stderr := cmd.ErrOrStderr(); logging.IsTerminal(stderr) {
		var bar *progressbar.ProgressBar
		var barMu sync.Mutex

		progress = func(processed, total int, currentFile string) {
			barMu.Lock()
			defer barMu.Unlock()

			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(stderr),
					progressbar.OptionEnableColorCodes(true),
					progressbar.OptionShowBytes(false),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionSetDescription("[cyan]Decorating[reset]"),
					progressbar.OptionSetTheme(progressbar.Theme{
						Saucer:        "[green]=[reset]",
						SaucerHead:    "[green]>[reset]",
						SaucerPadding: " ",
						BarStart:      "[",
						BarEnd:        "]",
					}),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(stderr)
					}),
				)
			}

			bar.Describe(fmt.Sprintf("[cyan]Decorating[reset] %s", filepath.Base(currentFile)))
			bar.Set(processed)
		}
	}

	result, err := walkUC.Walk(cmd.Context(), root, set, dryRun, progress)
	if err != nil {
		return err
	}

	if dryRun {
		for i := range result.Files {
			printMatches(out, &result.Files[i])
		}
	}

	fmt.Fprintf(out, "\nWalk complete:\n")
	fmt.Fprintf(out, "  Files scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(out, "  Files decorated:  %d\n", result.FilesDecorated)
	fmt.Fprintf(out, "  Decorations:      %d\n", result.Decorations)
	if dryRun {
		fmt.Fprintf(out, "  (dry run, nothing written)\n")
	}

	return nil
}
