// Command chartpng renders a YAML chart description to PNG or SVG, or shows
// it in a window.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/charts"
	"github.com/phanxgames/charts/raster"
	"github.com/phanxgames/charts/svg"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("chartpng: ")
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chartpng",
		Short:         "Render bubble charts described in YAML",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newViewCmd())
	return root
}

type renderOptions struct {
	output string
	format string
	zoom   float64
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render <chart.yaml>",
		Short: "Render a chart to a PNG or SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: input name with the format's extension)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format, 'png' or 'svg' (default: from the output extension, else png)")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 1, "Zoom factor applied around the content center before drawing")
	return cmd
}

type viewOptions struct {
	showFPS    bool
	scriptPath string
	exit       bool
}

func newViewCmd() *cobra.Command {
	var opts viewOptions
	cmd := &cobra.Command{
		Use:   "view <chart.yaml>",
		Short: "Show a chart in an interactive window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := charts.LoadChartSpec(args[0])
			if err != nil {
				return err
			}
			c, err := spec.Build()
			if err != nil {
				return err
			}
			cfg := charts.RunConfig{
				Title:           spec.Title,
				Width:           spec.Width,
				Height:          spec.Height,
				Background:      spec.Background,
				ShowFPS:         opts.showFPS,
				ExitAfterScript: opts.exit,
			}
			if opts.scriptPath != "" {
				data, err := os.ReadFile(opts.scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if cfg.Script, err = charts.LoadScript(data); err != nil {
					return err
				}
			} else {
				c.AnimateXY(0.8, 0.8)
			}
			return charts.Run(c, cfg)
		},
	}
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "Show an FPS counter")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "YAML script of taps, drags, zooms and screenshots to play back")
	cmd.Flags().BoolVar(&opts.exit, "exit", false, "Close the window when the script finishes")
	return cmd
}

func outputFormat(opts renderOptions) (string, error) {
	format := strings.ToLower(opts.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
	}
	switch format {
	case "", "png":
		return "png", nil
	case "svg":
		return "svg", nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

func runRender(input string, opts renderOptions) error {
	format, err := outputFormat(opts)
	if err != nil {
		return err
	}
	if opts.output == "" {
		opts.output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}

	spec, err := charts.LoadChartSpec(input)
	if err != nil {
		return err
	}
	c, err := spec.Build()
	if err != nil {
		return err
	}
	if opts.zoom != 1 {
		center := c.ViewPortHandler().ContentCenter()
		c.Zoom(opts.zoom, opts.zoom, center.X, center.Y)
	}

	switch format {
	case "svg":
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.output, err)
		}
		s := svg.New(f, spec.Width, spec.Height)
		c.Draw(s)
		s.Close()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", opts.output, err)
		}
	default:
		s := raster.New(spec.Width, spec.Height)
		c.Draw(s)
		if err := s.SavePNG(opts.output); err != nil {
			return err
		}
	}
	log.Printf("wrote %s", opts.output)
	return nil
}
