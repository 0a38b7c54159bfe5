package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/blockone/pkg/errors"
	"github.com/matzehuels/blockone/pkg/observability"
	"github.com/matzehuels/blockone/pkg/render"
	"github.com/matzehuels/blockone/pkg/render/sink"
	"github.com/matzehuels/blockone/pkg/scene"
	"github.com/matzehuels/blockone/pkg/script"
)

// playOptions holds flags for the play command.
type playOptions struct {
	outputs     []string
	padding     float64
	scale       float64
	transparent bool
	graphviz    bool
}

// playCommand creates the play command for headless event scripts.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play <script.toml>",
		Short: "Replay an event script and check its expectations",
		Long: `Replay an event script against a fresh editor without opening a window.

A script is a TOML file of [[event]] tables, each holding exactly one of
move, text, key, click, release or tick. An optional [expect] table lists
the block, link, complete_links and focused counts the final scene must
have; the command fails when they differ.

The final scene can be exported with --out. The format follows the file
extension: .svg, .png, .pdf (needs rsvg-convert) or .dot (Graphviz source
with every block pinned in place). With --graphviz, .svg and .pdf outputs
are drawn by Graphviz from that source instead of the built-in renderer.`,
		Example: `  blockone play connect.toml
  blockone play connect.toml -o connect.svg -o connect.png --scale 2
  blockone play connect.toml -o connect.svg --graphviz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.outputs, "out", "o", nil, "export the final scene (repeatable; format from extension)")
	cmd.Flags().Float64Var(&opts.padding, "padding", sink.DefaultPadding, "margin around the blocks in exports")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "leave the export background transparent")
	cmd.Flags().BoolVar(&opts.graphviz, "graphviz", false, "draw SVG and PDF exports with Graphviz")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, w io.Writer, path string, opts playOptions) error {
	logger := loggerFromContext(ctx)

	formats, err := outputFormats(opts.outputs)
	if err != nil {
		return err
	}

	cfg, _, err := c.loadConfig()
	if err != nil {
		return err
	}
	s, err := script.Load(path)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	e, err := newEditor(cfg)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	if err := s.Play(ctx, e); err != nil {
		return fmt.Errorf("play %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Played %d events", len(s.Events)))

	counts := script.Count(e.Scene())
	printKeyValue(w, "blocks", strconv.Itoa(counts.Blocks))
	printKeyValue(w, "links", fmt.Sprintf("%d (%d complete)", counts.Links, counts.CompleteLinks))
	printKeyValue(w, "focused", strconv.Itoa(counts.Focused))

	if len(opts.outputs) > 0 {
		sinkOpts := []sink.Option{sink.WithPadding(opts.padding), sink.WithScale(opts.scale)}
		if opts.transparent {
			sinkOpts = append(sinkOpts, sink.WithBackground(nil))
		} else {
			sinkOpts = append(sinkOpts, sink.WithBackground(cfg.Theme.BackgroundColor()))
		}
		if err := exportScene(ctx, e.Scene(), opts.outputs, formats, sinkOpts, opts.graphviz); err != nil {
			return err
		}
		for _, out := range opts.outputs {
			printFile(w, out)
		}
	}

	if err := s.Check(e.Scene()); err != nil {
		printError(w, "%s", errors.UserMessage(err))
		return err
	}
	if s.Expect == nil {
		printWarning(w, "no [expect] table, nothing checked")
		return nil
	}
	printSuccess(w, "expectations met")
	return nil
}

// outputFormats validates every output path and derives its format from the
// extension.
func outputFormats(outputs []string) ([]string, error) {
	formats := make([]string, len(outputs))
	for i, out := range outputs {
		if err := errors.ValidateOutputPath(out); err != nil {
			return nil, err
		}
		f := strings.ToLower(strings.TrimPrefix(filepath.Ext(out), "."))
		if err := errors.ValidateFormat(f); err != nil {
			return nil, err
		}
		formats[i] = f
	}
	return formats, nil
}

// exportScene renders s once per output, concurrently. Rendering only reads
// the scene.
func exportScene(ctx context.Context, s *scene.Scene, outputs, formats []string, opts []sink.Option, viaGraphviz bool) (err error) {
	hooks := observability.Export()
	hooks.OnExportStart(ctx, formats)
	start := time.Now()
	defer func() { hooks.OnExportComplete(ctx, formats, time.Since(start), err) }()

	g, gctx := errgroup.WithContext(ctx)
	for i, out := range outputs {
		format := formats[i]
		g.Go(func() error {
			var (
				data []byte
				err  error
			)
			if viaGraphviz {
				data, err = renderGraphviz(gctx, s, format, opts)
			} else {
				data, err = renderFormat(s, format, opts)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", out, err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
			}
			return nil
		})
	}
	return g.Wait()
}

func renderFormat(s *scene.Scene, format string, opts []sink.Option) ([]byte, error) {
	switch format {
	case errors.FormatSVG:
		return sink.RenderSVG(s, opts...), nil
	case errors.FormatPNG:
		return sink.RenderPNG(s, opts...)
	case errors.FormatPDF:
		return sink.RenderPDF(s, opts...)
	case errors.FormatDOT:
		return sink.RenderDOT(s), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// renderGraphviz draws SVG and PDF through Graphviz. Other formats have no
// Graphviz rendition and use the built-in sinks.
func renderGraphviz(ctx context.Context, s *scene.Scene, format string, opts []sink.Option) ([]byte, error) {
	switch format {
	case errors.FormatSVG:
		return sink.RenderGraphviz(ctx, s)
	case errors.FormatPDF:
		svg, err := sink.RenderGraphviz(ctx, s)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	}
	return renderFormat(s, format, opts)
}
