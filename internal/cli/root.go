// Package cli implements the offline palette command. It drives the color
// core directly and never talks to a server.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/centipy/palette-server/internal/color"
)

// NewRootCommand builds the palette command tree.
func NewRootCommand() *cobra.Command {
	var lang string

	root := &cobra.Command{
		Use:   "palette",
		Short: "Generate and inspect color palettes",
		Long: `palette generates harmonious color palettes and converts between color
notations without running the server.

Examples:
  palette generate --scheme triadic --count 5 --base "#3366CC"
  palette generate --css
  palette convert "rgb(255, 128, 0)"
  palette contrast "#FFFFFF" navy
  palette schemes`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&lang, "lang", "en", "Color name language: en, es")

	language := func() color.Language { return color.MatchLanguage(lang) }

	root.AddCommand(
		newGenerateCommand(language),
		newConvertCommand(language),
		newContrastCommand(),
		newSchemesCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
