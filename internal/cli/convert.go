package cli

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/harmony"
	"github.com/centipy/palette-server/internal/preview"
)

func newConvertCommand(language func() color.Language) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <color>",
		Short: "Show a color in every notation",
		Long: `Parse a color given as hex, rgb(), hsl() or a CSS name and print its other
notations, its descriptive name, and the nearest CSS named color.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := color.Parse(args[0])
			if !ok {
				return fmt.Errorf("cannot parse color %q", args[0])
			}
			r, g, b := c.RGB().Bytes()
			hsl := c.Rounded()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printf(w, "hex\t%s\n", c.Hex())
			printf(w, "rgb\trgb(%d, %d, %d)\n", r, g, b)
			printf(w, "hsl\thsl(%g, %g%%, %g%%)\n", hsl.H, hsl.S, hsl.L)
			printf(w, "name\t%s\n", color.NameIn(c, language()))
			printf(w, "css\t%s\n", color.NearestNamed(c))
			return w.Flush()
		},
	}
}

func newContrastCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <background> <foreground>",
		Short: "Grade the contrast of two colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bg, ok := color.Parse(args[0])
			if !ok {
				return fmt.Errorf("cannot parse background color %q", args[0])
			}
			fg, ok := color.Parse(args[1])
			if !ok {
				return fmt.Errorf("cannot parse foreground color %q", args[1])
			}
			p := preview.Pair(bg, fg)
			printf(cmd.OutOrStdout(), "%s on %s: %.2f:1 %s\n", p.Foreground, p.Background, math.Round(p.Contrast*100)/100, p.Level)
			return nil
		},
	}
}

func newSchemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List harmony schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, s := range harmony.Schemes() {
				marker := ""
				if s == harmony.DefaultScheme {
					marker = " (default)"
				}
				printf(w, "%s\t%s%s\n", s, s.Label(), marker)
			}
			return w.Flush()
		},
	}
}
