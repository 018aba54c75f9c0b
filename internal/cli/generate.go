package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/export"
	"github.com/centipy/palette-server/internal/harmony"
	"github.com/centipy/palette-server/internal/palette"
)

type generateOptions struct {
	scheme string
	count  int
	base   string
	css    bool
	seed   uint64
}

func newGenerateCommand(language func() color.Language) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a palette",
		Long: `Generate a palette from a harmony scheme.

Without --base the base hue is random. --seed makes the output repeatable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			colors, err := generate(opts)
			if err != nil {
				return err
			}
			format := export.FormatHex
			if opts.css {
				format = export.FormatCSS
			}
			printf(cmd.OutOrStdout(), "%s\n", export.Render(format, colors, language()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.scheme, "scheme", "s", string(harmony.DefaultScheme), "Harmony scheme (see 'palette schemes')")
	cmd.Flags().IntVarP(&opts.count, "count", "n", palette.DefaultColors, fmt.Sprintf("Number of colors, %d to %d", palette.MinColors, palette.MaxColors))
	cmd.Flags().StringVarP(&opts.base, "base", "b", "", "Base color in any notation")
	cmd.Flags().BoolVar(&opts.css, "css", false, "Print CSS custom properties instead of hex codes")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed; 0 picks one")

	return cmd
}

func generate(opts generateOptions) ([]color.HSL, error) {
	scheme, ok := harmony.ParseScheme(opts.scheme)
	if !ok {
		return nil, fmt.Errorf("unknown scheme %q", opts.scheme)
	}
	if opts.count < palette.MinColors || opts.count > palette.MaxColors {
		return nil, fmt.Errorf("count must be between %d and %d", palette.MinColors, palette.MaxColors)
	}

	var gen *harmony.Generator
	if opts.seed != 0 {
		gen = harmony.New(rand.New(rand.NewPCG(opts.seed, opts.seed)))
	} else {
		gen = harmony.New(nil)
	}

	sess := palette.New(gen)
	req := palette.GenerateOptions{Count: opts.count, Scheme: scheme}
	if opts.base != "" {
		base, ok := color.Parse(opts.base)
		if !ok {
			return nil, fmt.Errorf("cannot parse base color %q", opts.base)
		}
		req.Base = &base
	}
	if err := sess.Generate(req); err != nil {
		return nil, err
	}
	return sess.Colors(), nil
}
