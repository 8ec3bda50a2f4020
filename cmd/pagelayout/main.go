// Command pagelayout analyses the layout of PDF pages and prints their text
// in reading order, a JSON description of the region tree, or a rendering
// of the regions for inspection.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/tsawler/pagelayout"
	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/render"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "pagelayout",
		Usage: "Recover regions, columns and paragraphs from PDF pages",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log skipped splits and other diagnostics to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Print the text of a PDF in reading order",
				ArgsUsage: "<file.pdf>",
				Flags: append(analysisFlags(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the region tree as JSON instead of text",
					},
					&cli.BoolFlag{
						Name:  "join",
						Usage: "Join the lines of a paragraph with spaces",
					},
				),
				Action: analyze,
			},
			{
				Name:      "render",
				Usage:     "Draw the detected layout as HTML or PNG",
				ArgsUsage: "<file.pdf>",
				Flags: append(analysisFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: html or png (png draws the first selected page)",
						Value:   "html",
					},
					&cli.FloatFlag{
						Name:  "scale",
						Usage: "Pixels per page unit",
						Value: 1,
					},
				),
				Action: renderPages,
			},
		},
	}
}

func analysisFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntSliceFlag{
			Name:    "page",
			Aliases: []string{"p"},
			Usage:   "Page to analyse (1-indexed, repeatable; default: all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "merge-runs",
			Usage: "Join adjacent same-style runs before analysis",
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Usage: "Maximum region nesting depth",
			Value: layout.DefaultDecomposeConfig().MaxDepth,
		},
		&cli.IntFlag{
			Name:  "max-whitespace",
			Usage: "Whitespace rectangles searched per region",
			Value: layout.DefaultDecomposeConfig().MaxWhitespace,
		},
	}
}

// extractor builds the configured extractor for the command's input file.
func extractor(cmd *cli.Command) (*pagelayout.Extractor, error) {
	if cmd.Args().Len() != 1 {
		return nil, errors.New("expected exactly one PDF file")
	}

	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := layout.DefaultAnalyzerConfig()
	cfg.DecomposeConfig.MaxDepth = cmd.Int("max-depth")
	cfg.DecomposeConfig.MaxWhitespace = cmd.Int("max-whitespace")

	ext := pagelayout.Open(cmd.Args().First()).
		WithLogger(logger).
		WithConfig(cfg).
		Pages(cmd.IntSlice("page")...)
	if cmd.Bool("merge-runs") {
		ext = ext.MergeRuns()
	}
	return ext, nil
}

// output opens the destination named by --output, or stdout.
func output(cmd *cli.Command) (io.WriteCloser, error) {
	path := cmd.String("output")
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create output")
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func reportWarnings(warnings []pagelayout.Warning) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
}

func analyze(_ context.Context, cmd *cli.Command) error {
	ext, err := extractor(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("join") {
		ext = ext.JoinParagraphs()
	}

	out, err := output(cmd)
	if err != nil {
		return err
	}
	defer out.Close()

	if cmd.Bool("json") {
		doc, warnings, err := ext.Document()
		if err != nil {
			return err
		}
		reportWarnings(warnings)
		return render.WriteJSON(out, doc.Pages)
	}

	text, warnings, err := ext.Text()
	if err != nil {
		return err
	}
	reportWarnings(warnings)
	_, err = fmt.Fprintln(out, text)
	return errors.Wrap(err, "write text")
}

func renderPages(_ context.Context, cmd *cli.Command) error {
	ext, err := extractor(cmd)
	if err != nil {
		return err
	}

	doc, warnings, err := ext.Document()
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	cfg := render.DefaultConfig()
	cfg.Scale = cmd.Float("scale")

	out, err := output(cmd)
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(cmd.String("format")) {
	case "html":
		return render.WriteHTML(out, doc.Pages, cfg)
	case "png":
		if len(doc.Pages) == 0 {
			return errors.New("no pages to render")
		}
		return render.WritePNG(out, doc.Pages[0], cfg)
	default:
		return errors.Errorf("unknown format %q", cmd.String("format"))
	}
}
