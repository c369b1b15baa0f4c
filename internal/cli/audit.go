package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/corekeeper/internal/storage"
)

func (c *Cli) auditCmd() *cobra.Command {
	var (
		status string
		author string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show what happened to processed statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := storage.AuditFilter{
				Status:   storage.AuditStatus(status),
				AuthorID: author,
				Limit:    limit,
			}
			switch filter.Status {
			case "", storage.AuditAccepted, storage.AuditRejected, storage.AuditUnresolvable:
			default:
				return fmt.Errorf("unknown status %q, use accepted, rejected or unresolvable", status)
			}

			// аудит читается без расшифровки ключа устройства
			if err := c.openStorage(cmd.Context()); err != nil {
				return err
			}
			records, err := c.audit.ListStatements(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				c.io.Println("No statements recorded.")
				return nil
			}

			w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RECORDED\tSTATEMENT\tTYPE\tACTION\tSTATUS\tREASON")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					rec.RecordedAt.Format(time.RFC3339),
					shortID(rec.StatementID),
					rec.Type,
					rec.Action,
					rec.Status,
					rec.Reason)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status: accepted, rejected, unresolvable")
	cmd.Flags().StringVar(&author, "author", "", "filter by author identity")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of records, 0 for all")
	return cmd
}

func shortID(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}
