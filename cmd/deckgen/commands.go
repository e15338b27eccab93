package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"deckgen/internal/deck"
	"deckgen/internal/logging"
	"deckgen/internal/preview"
	"deckgen/internal/server"
	"deckgen/internal/watch"
	"deckgen/pptx"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		outDir string
		width  int
		from   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write a PNG preview of every slide",
		Long: `Renders each slide to slide-NN.png. By default the deck is built in memory
from the current assets; --from renders an existing .pptx instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pres, err := c.presentation(from)
			if err != nil {
				return err
			}

			rc := c.cfg.Render
			if cmd.Flags().Changed("out") {
				rc.OutDir = outDir
			}
			if cmd.Flags().Changed("width") {
				rc.Width = width
			}
			exporter := preview.New(preview.Options{
				OutDir:      c.cfg.Resolve(rc.OutDir),
				Width:       rc.Width,
				Concurrency: rc.Concurrency,
				FontDirs:    rc.FontDirs,
			})
			paths, err := exporter.Export(cmd.Context(), pres)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d previews written to %s\n", len(paths), c.cfg.Resolve(rc.OutDir))
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "preview directory (default render.out_dir)")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels (default render.width)")
	cmd.Flags().StringVar(&from, "from", "", "render this .pptx instead of building the deck")
	return cmd
}

// presentation opens path, or builds the deck from the current assets when
// path is empty.
func (c *cli) presentation(path string) (*pptx.Presentation, error) {
	if path != "" {
		pres, err := pptx.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return pres, nil
	}
	opts, err := c.deckOptions()
	if err != nil {
		return nil, err
	}
	pres, _, err := deck.Build(opts)
	if err != nil {
		return nil, fmt.Errorf("build deck: %w", err)
	}
	return pres, nil
}

func newInspectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the slide count, size and text of a .pptx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pres, err := pptx.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			layout := pres.GetLayout()
			props := pres.GetDocumentProperties()

			fmt.Fprintln(out, filepath.Base(args[0]))
			fmt.Fprintf(out, "  title:  %s\n", props.Title)
			fmt.Fprintf(out, "  author: %s\n", props.Creator)
			fmt.Fprintf(out, "  slides: %d\n", pres.GetSlideCount())
			fmt.Fprintf(out, "  size:   %.3f x %.3f in (%d x %d EMU)\n",
				pptx.EMUToInch(layout.CX), pptx.EMUToInch(layout.CY), layout.CX, layout.CY)
			for i, s := range pres.GetAllSlides() {
				fmt.Fprintf(out, "\n--- %d: %s (%d shapes, %d pictures)\n", i+1, s.GetName(), len(s.GetShapes()), len(s.GetPictures()))
				if text := s.ExtractText(); text != "" {
					fmt.Fprintln(out, text)
				}
			}
			return nil
		},
	}
}

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the deck whenever an asset changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.deckOptions()
			if err != nil {
				return err
			}
			regenerate := func(ctx context.Context) error {
				report, err := deck.Generate(ctx, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
				return nil
			}
			if err := regenerate(cmd.Context()); err != nil {
				return err
			}

			w, err := watch.New(opts.Assets.ImagesDir, opts.Assets.Logo, c.cfg.Watch.Debounce, regenerate)
			if err != nil {
				return err
			}
			if err := w.Start(cmd.Context()); err != nil {
				return err
			}
			<-cmd.Context().Done()
			w.Stop()

			st := w.Stats()
			logging.Info("watch stopped", "events", st.Events, "runs", st.Runs, "errors", st.Errors)
			return nil
		},
	}
}

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deck and slide previews over HTTP",
		Long: `Routes:
  GET /deck.pptx        the freshly built deck
  GET /slides           slide names and text as JSON
  GET /slides/:n.png    PNG preview of slide n
  GET /healthz          liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.deckOptions()
			if err != nil {
				return err
			}
			build := func(context.Context) (*pptx.Presentation, error) {
				pres, _, err := deck.Build(opts)
				return pres, err
			}
			previews := preview.New(preview.Options{
				Width:    c.cfg.Render.Width,
				FontDirs: c.cfg.Render.FontDirs,
			})
			if addr == "" {
				addr = c.cfg.Server.Host + c.cfg.Server.Port
			}
			return server.Run(cmd.Context(), server.SetupApp(build, previews), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.host + server.port)")
	return cmd
}
