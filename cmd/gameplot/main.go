// Package main provides the CLI entrypoint for gameplot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/willbradshaw/gameplot/internal/config"
	"github.com/willbradshaw/gameplot/internal/dashboard"
	"github.com/willbradshaw/gameplot/internal/export"
	"github.com/willbradshaw/gameplot/internal/facet"
	"github.com/willbradshaw/gameplot/internal/filter"
	"github.com/willbradshaw/gameplot/internal/gamestats"
	"github.com/willbradshaw/gameplot/internal/library"
	"github.com/willbradshaw/gameplot/internal/model"
	"github.com/willbradshaw/gameplot/internal/report"
)

const (
	defaultDimension = string(gamestats.ByPlatform)
	summaryGlyphSize = 30
	summaryBarSize   = 30
)

var (
	rootDB        string
	rootDimension string

	importFile  string
	importMerge bool

	filterPlatforms []string
	filterTags      []string
	filterStatuses  []string
	filterBuckets   []string
	filterFrom      string
	filterTo        string
	filterSearch    string

	exportOut string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gameplot",
		Short:         "Play-history dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootDB, "db", "", "path to the library database")
	rootCmd.Flags().StringVar(&rootDimension, "dimension", defaultDimension, "hours dimension (platform, tag, status, rating)")

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dimension", &rootDimension, fileCfg.Dashboard.Dimension)
	dim, err := parseDimension(rootDimension)
	if err != nil {
		return err
	}

	records, importedAt, err := loadLibrary(cmd, fileCfg)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("library is empty; import a play history with: gameplot import --file <games.json>")
	}

	ui := dashboard.NewModel(records, dim)
	ui.SetLastImported(importedAt)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a play-history export into the library",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importFile, "file", "", "path to the exported games JSON")
	cmd.Flags().BoolVar(&importMerge, "merge", false, "merge with the stored library instead of replacing it")
	return cmd
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path := strings.TrimSpace(importFile)
	if path == "" && fileCfg.Library.GamesFile != nil {
		path = *fileCfg.Library.GamesFile
	}
	if path == "" {
		return fmt.Errorf("--file is required (or set library.games-file in the config)")
	}

	records, err := library.ParseGamesFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse games file: %w", err)
	}

	st, err := openStore(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	if importMerge {
		existing, err := st.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		records = library.MergeByTitle(existing, records)
	}
	if err := st.ReplaceAll(ctx, records, time.Now()); err != nil {
		return fmt.Errorf("failed to store library: %w", err)
	}
	logErrf("Imported %d games\n", len(records))
	return nil
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print statistics for a filtered subset",
		Args:  cobra.NoArgs,
		RunE:  runSummaryCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringVar(&rootDimension, "dimension", defaultDimension, "hours dimension (platform, tag, status, rating)")
	return cmd
}

func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dimension", &rootDimension, fileCfg.Dashboard.Dimension)
	dim, err := parseDimension(rootDimension)
	if err != nil {
		return err
	}

	records, importedAt, err := loadLibrary(cmd, fileCfg)
	if err != nil {
		return err
	}
	catalog := facet.BuildCatalog(records)
	sel, err := selectionFromFlags(catalog)
	if err != nil {
		return err
	}

	rep := report.Build(records, catalog, sel, dim)
	out := cmd.OutOrStdout()
	if err := gamestats.RenderSummary(out, rep.Summary, rep.Timeline, importedAt); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if rep.Summary.Count == 0 {
		return nil
	}
	if err := gamestats.RenderTagBoxplots(out, rep.Boxplots, summaryGlyphSize); err != nil {
		return fmt.Errorf("failed to write tag table: %w", err)
	}
	if err := gamestats.RenderHours(out, dim, rep.Hours, summaryBarSize); err != nil {
		return fmt.Errorf("failed to write hours table: %w", err)
	}
	if err := gamestats.RenderTimeline(out, rep.Filtered, 0, 10, false); err != nil {
		return fmt.Errorf("failed to write timeline: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a filtered subset as CSV",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringVar(&exportOut, "out", "", "output path (default: stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	records, _, err := loadLibrary(cmd, fileCfg)
	if err != nil {
		return err
	}
	catalog := facet.BuildCatalog(records)
	sel, err := selectionFromFlags(catalog)
	if err != nil {
		return err
	}
	filtered := filter.Evaluate(records, sel)

	out := cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close output: %v\n", cerr)
			}
		}()
		out = f
	}
	if err := export.WriteCSV(out, filtered); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	if exportOut != "" {
		logErrf("Exported %d games to %s\n", len(filtered), exportOut)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&filterPlatforms, "platform", nil, "platform filter (repeatable)")
	cmd.Flags().StringSliceVar(&filterTags, "tag", nil, "tag filter (repeatable)")
	cmd.Flags().StringSliceVar(&filterStatuses, "status", nil, "status filter (repeatable)")
	cmd.Flags().StringSliceVar(&filterBuckets, "bucket", nil, "rating bucket filter, e.g. 7-8 (repeatable)")
	cmd.Flags().StringVar(&filterFrom, "from", "", "earliest last-played date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filterTo, "to", "", "latest last-played date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filterSearch, "search", "", "title substring filter")
}

// selectionFromFlags builds the filter selection from CLI flags. No
// --status flags means every observed status is selected, since an empty
// status set admits nothing.
func selectionFromFlags(catalog facet.Catalog) (model.Selection, error) {
	statuses := filterStatuses
	if len(statuses) == 0 {
		statuses = catalog.Statuses
	}
	sel := model.NewSelection(statuses)
	for _, p := range filterPlatforms {
		sel.Platforms[p] = struct{}{}
	}
	for _, t := range filterTags {
		sel.Tags[t] = struct{}{}
	}
	for _, b := range filterBuckets {
		if !facet.ValidBucket(b) {
			return model.Selection{}, fmt.Errorf("unknown rating bucket %q (available: %s)",
				b, strings.Join(facet.RatingBuckets(), ", "))
		}
		sel.RatingBuckets[b] = struct{}{}
	}
	if filterFrom != "" {
		parsed, ok := model.ParseDate(filterFrom)
		if !ok {
			return model.Selection{}, fmt.Errorf("invalid --from value (expected YYYY-MM-DD)")
		}
		sel.StartDate = &parsed
	}
	if filterTo != "" {
		parsed, ok := model.ParseDate(filterTo)
		if !ok {
			return model.Selection{}, fmt.Errorf("invalid --to value (expected YYYY-MM-DD)")
		}
		sel.EndDate = &parsed
	}
	sel.Search = filterSearch
	return sel, nil
}

func parseDimension(value string) (gamestats.Dimension, error) {
	for _, d := range gamestats.Dimensions() {
		if string(d) == value {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid --dimension value %q (use platform, tag, status, or rating)", value)
}

// loadLibrary reads the full library and the last import time. The
// returned time is zero when the library has never been imported.
func loadLibrary(cmd *cobra.Command, fileCfg config.FileConfig) ([]model.GameRecord, time.Time, error) {
	st, err := openStore(cmd, fileCfg)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer closeStore(st)

	ctx := context.Background()
	records, err := st.LoadAll(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load library: %w", err)
	}
	importedAt, ok, err := st.LastImportedAt(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read import time: %w", err)
	}
	if !ok {
		importedAt = time.Time{}
	}
	return records, importedAt, nil
}

func openStore(_ *cobra.Command, fileCfg config.FileConfig) (*library.Store, error) {
	path := rootDB
	if path == "" && fileCfg.Library.DB != nil {
		path = *fileCfg.Library.DB
	}
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := library.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *library.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# gameplot configuration
# Uncomment a value to enable it. CLI flags override config values.

[library]
# db = %q
# games-file = "~/games/annotated-games.json"

[dashboard]
# dimension = %q   # platform, tag, status, or rating
`,
		config.DefaultDBPath(),
		defaultDimension,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
