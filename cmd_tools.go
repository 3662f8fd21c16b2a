package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"p9e.in/ascomp/config"
	"p9e.in/ascomp/middleware"
	"p9e.in/ascomp/pkg/formstate"
	"p9e.in/ascomp/pkg/importer"
	"p9e.in/ascomp/pkg/render"
	"p9e.in/ascomp/utils"
)

var (
	importFile   string
	importDryRun bool

	renderFile     string
	renderRenderer string
	renderOut      string

	tokenUser string
	tokenName string
	tokenRole string
	tokenTTL  time.Duration
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import ASCOMP reports from a CSV or XLSX file",
	Long: `Reads every row of the file, validates and maps it, and inserts the
reports. Rows already imported (same content) are skipped. With --dry-run
nothing is written and the database is not needed.`,
	RunE: runImport,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a report JSON file (form state) to PDF",
	RunE:  runRender,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token",
	RunE:  runToken,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "CSV or XLSX file")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate only")
	importCmd.MarkFlagRequired("file")

	renderCmd.Flags().StringVar(&renderFile, "file", "", "report JSON file")
	renderCmd.Flags().StringVar(&renderRenderer, "renderer", "", "direct or browser (default from PDF_RENDERER)")
	renderCmd.Flags().StringVar(&renderOut, "out", ".", "output directory")
	renderCmd.MarkFlagRequired("file")

	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "display name")
	tokenCmd.Flags().StringVar(&tokenRole, "role", utils.RoleViewer, "admin, manager, fse or viewer")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.MarkFlagRequired("user")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	f, err := os.Open(importFile)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := importer.ReadRows(importFile, f)
	if err != nil {
		return err
	}
	res, err := importer.Import(cmd.Context(), rows, importer.Options{CreatedBy: "cli"})
	if err != nil {
		return err
	}
	if !importDryRun {
		if err := config.Connect(cfg); err != nil {
			return err
		}
		if err := importer.NewService(config.DB, log).Persist(cmd.Context(), res); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	b, err := os.ReadFile(renderFile)
	if err != nil {
		return err
	}
	var form map[string]interface{}
	if err := json.Unmarshal(b, &form); err != nil {
		return fmt.Errorf("parse %s: %w", renderFile, err)
	}
	report, err := formstate.Decode(form)
	if err != nil {
		return err
	}

	name := renderRenderer
	if name == "" {
		name = cfg.PDF.Renderer
	}
	pdf, err := render.New(name, cfg.PDF.ChromeBin, cfg.PDF.Timeout, log).Render(cmd.Context(), &report)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return err
	}
	out := filepath.Join(renderOut, render.Filename(&report))
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return err
	}
	log.Info("pdf written", zap.String("path", out), zap.Int("bytes", len(pdf)))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if len(utils.RolePermissions(tokenRole)) == 0 {
		return fmt.Errorf("unknown role %q", tokenRole)
	}
	tok, err := middleware.GenerateToken([]byte(cfg.JWTSecret), tokenUser, tokenName, tokenRole, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
