package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ufm/internal/catalog"
	"ufm/internal/config"
	"ufm/internal/interchange"
	"ufm/internal/logging"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun        bool
		ignoreMissing bool
		corrections   []string
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "import <file> [file...]",
		Short: "Import portable envelope files into the catalog",
		Long: `Import reads one or more envelope files, checks their declared schema
version, fills or rejects elements with blank required fields, and creates
new catalog entries. Existing entries are never updated: every imported
element gets a fresh id.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("configure logging: %w", err)
				}

				if !dryRun {
					lock, err := interchange.AcquireImportLock(cfg.ImportLockPath())
					if err != nil {
						return err
					}
					defer lock.Unlock()
				}

				corrector, err := selectCorrector(cmd, ignoreMissing, corrections)
				if err != nil {
					return err
				}

				importer := interchange.NewImporter(
					managersFor(store),
					interchange.WithCorrector(corrector),
					interchange.WithAuditLog(interchange.NewAuditLog(cfg.AuditLogDir())),
					interchange.WithLogger(logger),
				)

				failed := 0
				for _, path := range args {
					raw, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read import file: %w", err)
					}

					var result *interchange.ImportResult
					if dryRun {
						result = importer.DryRun(cmd.Context(), raw)
					} else {
						result = importer.Apply(cmd.Context(), raw)
					}
					if !result.Success {
						failed++
					}
					if err := renderImportResult(cmd, path, result, jsonOutput); err != nil {
						return err
					}
				}

				if failed > 0 {
					return fmt.Errorf("%d of %d file(s) failed to import", failed, len(args))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze without creating anything")
	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "Proceed with blank defaults for missing required fields")
	cmd.Flags().StringArrayVar(&corrections, "set", nil, "Correction value as kind[index].field=value (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}

// selectCorrector picks the correction strategy: explicit --set values win,
// then --ignore-missing, then an interactive prompt when attached to a
// terminal. Non-interactive runs without either flag get no corrector, so
// an import needing corrections fails instead of hanging.
func selectCorrector(cmd *cobra.Command, ignoreMissing bool, corrections []string) (interchange.Corrector, error) {
	if len(corrections) > 0 {
		values := make(map[string]string, len(corrections))
		for _, entry := range corrections {
			key, value, ok := strings.Cut(entry, "=")
			if !ok {
				return nil, fmt.Errorf("invalid --set value %q (expected kind[index].field=value)", entry)
			}
			values[strings.TrimSpace(key)] = value
		}
		return interchange.ValuesCorrector(values), nil
	}
	if ignoreMissing {
		return interchange.IgnoreMissing(), nil
	}
	if file, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(file.Fd()) && shouldColorize(cmd.OutOrStdout()) {
		return promptCorrector(file, cmd.OutOrStdout()), nil
	}
	return nil, nil
}

// promptCorrector asks for a replacement value per blank field. An empty
// answer keeps the field blank; "!ignore" accepts blanks for everything
// still pending; "!cancel" abandons the import.
func promptCorrector(in io.Reader, out io.Writer) interchange.Corrector {
	return interchange.CorrectorFunc(func(req *interchange.CorrectionRequest) {
		scanner := bufio.NewScanner(in)
		reports := req.Reports
		for i, report := range reports {
			for j, item := range report.Items {
				for k, field := range item.Fields {
					fmt.Fprintf(out, "%s[%d].%s is blank. Value (empty to keep blank, !ignore, !cancel): ",
						report.Kind, item.Index, field.Name)
					if !scanner.Scan() {
						req.Cancel()
						return
					}
					answer := strings.TrimSpace(scanner.Text())
					switch answer {
					case "!cancel":
						req.Cancel()
						return
					case "!ignore":
						req.Resolve(interchange.Resolution{Decision: interchange.DecisionIgnore})
						return
					default:
						reports[i].Items[j].Fields[k].Value = answer
					}
				}
			}
		}
		req.Resolve(interchange.Resolution{Decision: interchange.DecisionCorrected, Reports: reports})
	})
}

func renderImportResult(cmd *cobra.Command, path string, result *interchange.ImportResult, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(cmd, map[string]any{"file": path, "result": result})
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	kind := statusOK
	if !result.Success {
		kind = statusError
	}
	fmt.Fprintln(out, renderStatusLine(kind, fmt.Sprintf("%s: %s", path, result.Message), colorize))
	for _, conflict := range result.Conflicts {
		fmt.Fprintln(out, renderStatusLine(statusWarn, fmt.Sprintf("%s: %s", conflict.Field, conflict.Message), colorize))
	}
	for _, inserted := range result.InsertedIDs {
		fmt.Fprintf(out, "  created %s %s\n", inserted.Type, inserted.ID)
	}
	return nil
}
