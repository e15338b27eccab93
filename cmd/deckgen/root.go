package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deckgen/internal/config"
	"deckgen/internal/deck"
	"deckgen/internal/logging"
)

// cli holds the global flags and the configuration they resolve to.
type cli struct {
	configPath string
	baseDir    string
	output     string
	images     string
	logo       string
	logLevel   string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "deckgen",
		Short: "Generate the Scholarship Week 2026 presentation",
		Long: `deckgen builds the 17-slide "Building Leaders from the Ground Up" deck
and writes it as a .pptx file.

Images are read from the slide-images directory and the logo from the base
directory. Missing images are skipped; everything else on the slide is kept.

Run without arguments to generate the deck with the default settings.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runGenerate,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML config file (default $CONFIG_PATH)")
	pf.StringVar(&c.baseDir, "base-dir", "", "directory relative paths are resolved against")
	pf.StringVarP(&c.output, "output", "o", "", "output .pptx path")
	pf.StringVar(&c.images, "images", "", "slide image directory")
	pf.StringVar(&c.logo, "logo", "", "logo image path")
	pf.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newRenderCmd(c),
		newInspectCmd(c),
		newWatchCmd(c),
		newServeCmd(c),
	)
	return root
}

// setup loads the config, applies flag overrides and starts logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFrom(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-dir") {
		cfg.BaseDir = c.baseDir
	}
	if flags.Changed("output") {
		cfg.Output = c.output
	}
	if flags.Changed("images") {
		cfg.ImagesDir = c.images
	}
	if flags.Changed("logo") {
		cfg.Logo = c.logo
	}
	if flags.Changed("log-level") {
		cfg.Logger.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)
	c.cfg = cfg
	return nil
}

func (c *cli) deckOptions() (deck.Options, error) {
	ts, err := c.cfg.ResolveBuildTime()
	if err != nil {
		return deck.Options{}, err
	}
	return deck.Options{
		Assets: deck.Assets{
			ImagesDir: c.cfg.ImagesPath(),
			Logo:      c.cfg.LogoPath(),
		},
		Output:    c.cfg.OutputPath(),
		BuildTime: ts,
	}, nil
}

func (c *cli) runGenerate(cmd *cobra.Command, _ []string) error {
	opts, err := c.deckOptions()
	if err != nil {
		return err
	}
	report, err := deck.Generate(cmd.Context(), opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
	return nil
}
