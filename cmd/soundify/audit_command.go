package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundify/internal/adapters/sqlite"
	"github.com/ewilliams-labs/soundify/internal/core/domain"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent recommendation requests from the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			repo, err := openAuditRepository(cfg.Storage)
			if err != nil {
				return err
			}
			if repo == nil {
				return errors.New("audit log is disabled (set STORAGE_DRIVER=sqlite)")
			}
			defer repo.Close()

			return runAudit(cmd, repo, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")
	return cmd
}

func runAudit(cmd *cobra.Command, repo *sqlite.Adapter, limit int) error {
	records, err := repo.ListRecent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No audit records")
		return nil
	}
	fmt.Fprintln(out, renderTable(auditColumns, auditRows(records), fmt.Sprintf("%d records", len(records))))
	return nil
}

func auditRows(records []domain.AuditRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.CreatedAt.Local().Format(time.DateTime),
			rec.Variant,
			rec.Outcome,
			strconv.Itoa(rec.Items),
			rec.Duration.Round(time.Millisecond).String(),
			rec.Error,
		})
	}
	return rows
}
