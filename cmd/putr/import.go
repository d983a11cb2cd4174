package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"putr/internal/domain"
	"putr/internal/service"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import [path...]",
		Short: "Import ledger files or directories as one batch",
		Long: "Import ledger files. Directories expand to their ledger files. " +
			"With no arguments the configured ledgers directory is imported. " +
			"Files run in filename order and a failing file never stops the batch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if len(args) == 0 {
					args = []string{a.store.Dir()}
				}
				paths, err := collectLedgerPaths(args, a.imports.LedgerFiles)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					printWarn("No ledger files found.")
					return nil
				}

				items, err := a.imports.ImportFiles(ctx, paths)
				if err != nil {
					return err
				}
				return reportBatch(items)
			})
		},
	}
}

// collectLedgerPaths expands directories through list and keeps plain files
// as given.
func collectLedgerPaths(args []string, list func(dir string) ([]string, error)) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := list(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	return paths, nil
}

func reportBatch(items []service.BatchItem) error {
	var imported, skipped, missing, failed int
	for _, item := range items {
		switch {
		case item.Err != nil:
			failed++
			printError(fmt.Sprintf("ERROR    %s: %v", item.Filename, item.Err))
		case item.Report.Result == domain.ImportSuccess:
			imported++
			printSuccess(fmt.Sprintf("IMPORTED %s (%s, %d rows, %d players)",
				item.Filename, item.Report.DateKey, item.Report.Rows, item.Report.PlayersUpdated))
		case item.Report.Result == domain.ImportGameExists:
			skipped++
			printWarn(fmt.Sprintf("SKIPPED  %s: game %s already exists", item.Filename, item.Report.DateKey))
		case item.Report.Result == domain.ImportMissingNicknames:
			missing++
			printError(fmt.Sprintf("MISSING  %s: unknown nicknames %s",
				item.Filename, strings.Join(item.Report.MissingNicknames, ", ")))
		}
	}

	accent.Printf("%d imported, %d skipped, %d with unknown nicknames, %d failed\n", imported, skipped, missing, failed)
	if failed > 0 {
		return fmt.Errorf("%d ledger file(s) failed to import", failed)
	}
	return nil
}
