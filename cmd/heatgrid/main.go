// Package main provides the CLI entry point for heatgrid.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/heatgrid-go/internal"
	"github.com/ukaji3/heatgrid-go/internal/config"
	"github.com/ukaji3/heatgrid-go/internal/server"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/output"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/render"
)

var (
	outputPath   string
	outputDir    string
	sheetsDir    string
	pretty       bool
	format       string
	cellSize     int
	legacyCanvas bool
	workers      int
	addr         string
)

var (
	cfg    *config.Config
	logger *internal.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "heatgrid",
		Short: "Assemble two-row spreadsheet records and render them as heatmaps",
		Long: `heatgrid reads xlsx or xlsb workbooks in which each record spans one or
two rows, assembles the records per sheet, and renders per-field averages as
SVG heatmaps.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logger = internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
			return nil
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse [input.xlsx]",
		Short: "Assemble records and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	parseCmd.Flags().StringVar(&format, "format", "auto", "Workbook format: auto, xlsx, or xlsb")
	parseCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")

	renderCmd := &cobra.Command{
		Use:   "render [records.json|-]",
		Short: "Render assembled records JSON as heatmap markup",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	addRenderFlags(renderCmd)

	heatmapCmd := &cobra.Command{
		Use:   "heatmap [input.xlsx...]",
		Short: "Assemble and render one or more workbooks",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHeatmap,
	}
	heatmapCmd.Flags().StringVar(&outputDir, "out-dir", "", "Directory for per-workbook .html files (default: stdout)")
	heatmapCmd.Flags().StringVar(&format, "format", "auto", "Workbook format: auto, xlsx, or xlsb")
	heatmapCmd.Flags().IntVar(&workers, "workers", 0, "Workbooks processed concurrently (default: HEATGRID_WORKERS)")
	addRenderFlags(heatmapCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve parse and render over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: HEATGRID_ADDR)")
	addRenderFlags(serveCmd)

	rootCmd.AddCommand(parseCmd, renderCmd, heatmapCmd, serveCmd)
	return rootCmd
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cellSize, "cell-size", 0, "Grid cell edge length (default: HEATGRID_CELL_SIZE)")
	cmd.Flags().BoolVar(&legacyCanvas, "legacy-canvas", false, "Use a fixed 500x500 canvas")
}

// renderOptions merges command-line flags over the loaded configuration.
func renderOptions(cmd *cobra.Command) render.Options {
	opts := cfg.Render.Options()
	if cmd.Flags().Changed("cell-size") {
		opts.CellSize = cellSize
	}
	if cmd.Flags().Changed("legacy-canvas") {
		opts.LegacyCanvas = legacyCanvas
	}
	return opts
}

func assembleOptions() (heatgrid.Options, error) {
	f, err := heatgrid.ParseFormat(format)
	if err != nil {
		return heatgrid.Options{}, err
	}
	return heatgrid.Options{
		Format: f,
		Logger: logger.WithPrefix("[assembler] "),
	}, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, err := assembleOptions()
	if err != nil {
		return err
	}

	// Assemble records
	wb, err := heatgrid.Assemble(inputPath, opts)
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}
	logger.Info("%s: %d sheets, %d records", filepath.Base(inputPath), wb.Len(), wb.RecordCount())

	// Serialize to JSON
	jsonData, err := output.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if err := writeOutput(cmd.OutOrStdout(), outputPath, jsonData); err != nil {
		return err
	}

	// Write per-sheet files
	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	return nil
}

func writeSheetFiles(wb *models.Workbook, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, sheet := range wb.Sheets() {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheet.Name+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	wb, err := output.FromJSON(data)
	if err != nil {
		logger.Warn("input is not a records document, rendering nothing: %v", err)
		wb = nil
	}

	markup := render.Render(wb, renderOptions(cmd))
	return writeOutput(cmd.OutOrStdout(), outputPath, []byte(markup))
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	opts, err := assembleOptions()
	if err != nil {
		return err
	}
	renderOpts := renderOptions(cmd)

	limit := cfg.Workers
	if cmd.Flags().Changed("workers") {
		limit = workers
	}
	if limit < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", limit)
	}

	if outputDir != "" {
		if err := checkOutputNames(outputDir, args); err != nil {
			return err
		}
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	results := make([]string, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(limit)

	for i, inputPath := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			wb, err := heatgrid.Assemble(inputPath, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", inputPath, err)
			}
			results[i] = render.Render(wb, renderOpts)
			logger.Info("%s: rendered %d sheets", filepath.Base(inputPath), wb.Len())

			if outputDir == "" {
				return nil
			}
			return os.WriteFile(htmlPath(outputDir, inputPath), []byte(results[i]), 0644)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if outputDir == "" {
		for _, markup := range results {
			fmt.Fprintln(cmd.OutOrStdout(), markup)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr != "" {
		cfg.Server.Addr = addr
	}
	opts := renderOptions(cmd)
	cfg.Render.CellSize = opts.CellSize
	cfg.Render.LegacyCanvas = opts.LegacyCanvas

	srv := server.New(cfg, logger).HTTPServer()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func htmlPath(dir, inputPath string) string {
	base := filepath.Base(inputPath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".html")
}

// checkOutputNames rejects inputs that would write the same .html file.
func checkOutputNames(dir string, inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, inputPath := range inputs {
		out := htmlPath(dir, inputPath)
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%s and %s both write %s", prev, inputPath, out)
		}
		seen[out] = inputPath
	}
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
