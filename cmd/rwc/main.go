package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/rwc/internal/app"

	"github.com/spf13/cobra"
)

// errSourcesFailed signals that some output was printed but at least one source failed
var errSourcesFailed = errors.New("one or more sources could not be counted")

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	lines, _ := cmd.Flags().GetBool("lines")
	words, _ := cmd.Flags().GetBool("words")
	bytes, _ := cmd.Flags().GetBool("bytes")
	chars, _ := cmd.Flags().GetBool("chars")
	tokens, _ := cmd.Flags().GetBool("tokens")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	htmlFlag, _ := cmd.Flags().GetBool("html")
	selector, _ := cmd.Flags().GetString("selector")
	includeAll, _ := cmd.Flags().GetBool("include-all")
	markdown, _ := cmd.Flags().GetBool("markdown")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	if !htmlFlag && (selector != "" || includeAll || markdown) {
		return app.Config{}, fmt.Errorf("--selector, --include-all and --markdown require --html")
	}

	// no metric flags means plain wc output
	columns := app.Columns{
		Lines:  lines,
		Words:  words,
		Chars:  chars,
		Bytes:  bytes,
		Tokens: tokens,
	}
	if !columns.Any() {
		columns = app.DefaultColumns
	}

	outputFormat := app.Text
	if jsonFlag {
		outputFormat = app.JSON
	}

	return app.Config{
		Sources:      args, // empty means stdin
		Columns:      columns,
		HTML:         htmlFlag,
		Selector:     selector,
		IncludeAll:   includeAll,
		Markdown:     markdown,
		OutputFormat: outputFormat,
		Quiet:        quiet,
		Debug:        debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug, quiet bool) {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// newRootCmd builds the rwc command with its flags
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rwc [sources...]",
		Short: "Count lines, words and bytes",
		Long: `rwc prints newline, word and byte counts for each source, like wc.
Sources may be local files, URLs, or standard input ("-" or no arguments).
A total line is printed when more than one source is given.

Examples:
  rwc notes.txt
  rwc -l *.go
  cat report.md | rwc -w
  rwc --html --json https://example.com`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := buildConfig(cmd, args)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			setupLogger(config.Debug, config.Quiet)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			report, runErr := app.Run(ctx, config)
			if report == nil {
				return fmt.Errorf("rwc failed: %w", runErr)
			}

			// print whatever was counted, even when some sources failed
			output, err := report.Format(config.OutputFormat)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output)

			switch {
			case runErr != nil:
				return fmt.Errorf("rwc failed: %w", runErr)
			case report.Failed():
				return errSourcesFailed
			}
			return nil
		},
	}

	// metric flags mirror wc
	rootCmd.Flags().BoolP("lines", "l", false, "Print the newline counts")
	rootCmd.Flags().BoolP("words", "w", false, "Print the word counts")
	rootCmd.Flags().BoolP("bytes", "c", false, "Print the byte counts")
	rootCmd.Flags().BoolP("chars", "m", false, "Print the character counts")
	rootCmd.Flags().BoolP("tokens", "t", false, "Print the token counts (cl100k_base)")

	rootCmd.Flags().Bool("json", false, "Output in JSON format")

	// html extraction
	rootCmd.Flags().Bool("html", false, "Count the readable text of HTML sources instead of the markup")
	rootCmd.Flags().StringP("selector", "s", "", "CSS selector for HTML extraction")
	rootCmd.Flags().BoolP("include-all", "i", false, "Keep all HTML content without readability filtering")
	rootCmd.Flags().Bool("markdown", false, "Render extracted HTML as Markdown before counting")
	rootCmd.MarkFlagsMutuallyExclusive("selector", "include-all")

	// other flags
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress warnings and progress output")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errSourcesFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
