// coopratio is the statement ingestion and ratio analysis CLI for
// co-operative society financials.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coopstack/ratio-engine/internal/common"
	"github.com/coopstack/ratio-engine/internal/entity"
	"github.com/coopstack/ratio-engine/internal/export"
	"github.com/coopstack/ratio-engine/internal/ingest"
	"github.com/coopstack/ratio-engine/internal/ratios"
	"github.com/coopstack/ratio-engine/internal/store"
)

type app struct {
	cfg    *common.Config
	store  store.Store
	logger *zap.Logger
	orgID  uuid.UUID
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	var orgFlag string

	root := &cobra.Command{
		Use:           "coopratio",
		Short:         "Normalize co-operative society statements and compute ratio analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), orgFlag)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}
	root.PersistentFlags().StringVar(&orgFlag, "org", "", "organization UUID (defaults to the global scope)")

	root.AddCommand(a.ingestCmd(), a.watchCmd(), a.ratiosCmd(), a.periodsCmd(),
		a.mappingsCmd(), a.benchmarksCmd(), a.exportCmd())
	return root.ExecuteContext(ctx)
}

func (a *app) setup(ctx context.Context, orgFlag string) error {
	a.cfg = common.LoadConfig()
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	if orgFlag != "" {
		id, err := uuid.Parse(orgFlag)
		if err != nil {
			return fmt.Errorf("invalid --org value: %w", err)
		}
		a.orgID = id
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	a.logger = logger

	slogger := slog.Default()
	switch a.cfg.Store.Driver {
	case "postgres":
		a.store, err = store.OpenPostgres(ctx, a.cfg.Database, slogger)
	default:
		a.store, err = store.OpenSQLite(ctx, a.cfg.Store, slogger)
	}
	return err
}

func (a *app) teardown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close store", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) ingestCmd() *cobra.Command {
	var skipHidden bool
	cmd := &cobra.Command{
		Use:   "ingest <file-or-dir>",
		Short: "Extract statements from xlsx/docx/pdf documents and store them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := ingest.NewService(a.store, a.logger)

			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if info.IsDir() {
				results, stats, err := svc.IngestDirectory(cmd.Context(), a.orgID, args[0], skipHidden)
				if err != nil {
					return err
				}
				for _, r := range results {
					if r.Err != "" {
						fmt.Printf("FAIL %s: %s\n", r.Path, r.Err)
						continue
					}
					fmt.Printf("ok   %s: period %s\n", r.Path, r.PeriodLabel)
				}
				fmt.Printf("%d matched, %d succeeded, %d failed\n",
					stats.Matched, stats.Succeeded, stats.Failed)
				return nil
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			set, err := svc.IngestFile(cmd.Context(), a.orgID, args[0], data)
			if err != nil {
				return err
			}
			fmt.Printf("ingested %s: period %s\n", filepath.Base(args[0]), set.PeriodLabel)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipHidden, "skip-hidden", true, "skip hidden files and directories")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var debounce time.Duration
	var initialScan bool
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a drop folder and ingest statement documents as they appear",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := ingest.NewService(a.store, a.logger)
			events, errs, err := ingest.StartWatcher(cmd.Context(), ingest.WatchConfig{
				Roots:       []string{args[0]},
				InitialScan: initialScan,
				Debounce:    debounce,
			})
			if err != nil {
				return err
			}
			for {
				select {
				case path, ok := <-events:
					if !ok {
						return nil
					}
					data, err := os.ReadFile(path)
					if err != nil {
						a.logger.Warn("watch: read failed", zap.String("path", path), zap.Error(err))
						continue
					}
					set, err := svc.IngestFile(cmd.Context(), a.orgID, path, data)
					if err != nil {
						a.logger.Warn("watch: ingest failed", zap.String("path", path), zap.Error(err))
						continue
					}
					fmt.Printf("ingested %s: period %s\n", filepath.Base(path), set.PeriodLabel)
				case err, ok := <-errs:
					if ok && err != nil {
						a.logger.Warn("watch: watcher error", zap.Error(err))
					}
				}
			}
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 2*time.Second, "quiet window before a changed file is ingested")
	cmd.Flags().BoolVar(&initialScan, "initial-scan", false, "ingest files already present at startup")
	return cmd
}

func (a *app) ratiosCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ratios <period>",
		Short: "Compute, store and print the ratio battery for a stored period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := ingest.NewService(a.store, a.logger)
			bundle, err := svc.ComputeRatios(cmd.Context(), a.orgID, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return jsonDump(bundle)
			}
			for _, key := range ratios.RatioKeyOrder {
				value, ok := bundle.Values[key]
				if !ok {
					continue
				}
				status := string(bundle.Statuses[key])
				fmt.Printf("%-46s %14.2f  %s\n", ratios.RatioLabels[key], value, status)
			}
			fmt.Println()
			fmt.Println(bundle.Interpretation)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full bundle as JSON")
	return cmd
}

func (a *app) periodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List stored reporting periods, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			periods, err := a.store.ListPeriods(cmd.Context(), a.orgID)
			if err != nil {
				return err
			}
			for _, p := range periods {
				fmt.Println(p)
			}
			return nil
		},
	}
}

func (a *app) mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage canonical field-mapping rules",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List mapping rules visible to the organization, scoped first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mappings, err := a.store.ListMappings(cmd.Context(), a.orgID)
			if err != nil {
				return err
			}
			for _, m := range mappings {
				scope := "org"
				if m.Global() {
					scope = "global"
				}
				fmt.Printf("%-8s %-14s %-28s %s\n",
					scope, m.StatementType, m.CanonicalField, m.DisplayName)
			}
			return nil
		},
	}

	var aliases []string
	set := &cobra.Command{
		Use:   "set <statement-type> <canonical-field> <display-name>",
		Short: "Create or replace a mapping rule in the organization's scope",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := ingest.NewService(a.store, a.logger)
			err := svc.SaveMapping(cmd.Context(), entity.FieldMapping{
				OrganizationID: a.orgID,
				StatementType:  entity.StatementType(args[0]),
				CanonicalField: args[1],
				DisplayName:    args[2],
				Aliases:        aliases,
			})
			if err != nil {
				return err
			}
			fmt.Println("mapping saved")
			return nil
		},
	}
	set.Flags().StringSliceVar(&aliases, "alias", nil, "additional source labels (repeatable)")

	rm := &cobra.Command{
		Use:   "rm <statement-type> <canonical-field>",
		Short: "Delete a mapping rule from the organization's scope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.store.DeleteMapping(cmd.Context(), a.orgID,
				entity.StatementType(args[0]), args[1])
		},
	}

	cmd.AddCommand(list, set, rm)
	return cmd
}

func (a *app) benchmarksCmd() *cobra.Command {
	var setFile string
	cmd := &cobra.Command{
		Use:   "benchmarks",
		Short: "Show effective benchmarks, or replace overrides from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if setFile != "" {
				doc, err := os.ReadFile(setFile)
				if err != nil {
					return err
				}
				svc := ingest.NewService(a.store, a.logger)
				if _, err := svc.SaveOverrides(cmd.Context(), a.orgID, doc); err != nil {
					return err
				}
				fmt.Println("benchmark overrides saved")
				return nil
			}

			overrides, err := a.store.GetOverrides(cmd.Context(), a.orgID)
			if err != nil {
				return err
			}
			effective := ratios.DefaultBenchmarks().Merge(overrides)
			for _, key := range ratios.BenchmarkKeyOrder {
				if v, ok := effective.Value(key); ok {
					fmt.Printf("%-46s %10.2f\n", ratios.BenchmarkLabels[key], v)
				} else {
					fmt.Printf("%-46s %10s\n", ratios.BenchmarkLabels[key], "-")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&setFile, "set", "", "JSON file of benchmark overrides to store")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "export <period>",
		Short: "Export a computed ratio bundle to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := export.NewService(a.store, slog.Default())
			data, err := svc.ExportRatiosXLSX(cmd.Context(), a.orgID, args[0])
			if err != nil {
				return err
			}
			if outFile == "" {
				outFile = filepath.Join(a.cfg.Export.OutputDir,
					fmt.Sprintf("ratios_%s.xlsx", args[0]))
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return err
			}
			fmt.Println("written", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file path")
	return cmd
}

func jsonDump(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
