package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/florijnhq/florijn/internal/cli"
)

func auditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the classification audit trail",
		Long:  `List the most recent classification decisions: which rule fired, the ledger code and VAT rate assigned, and the confidence.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetAuditTrail(ctx, currentUser(), limit)
			if err != nil {
				return fmt.Errorf("failed to get audit trail: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println(cli.StyleSubtle("No audit records yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Tijd"),
				cli.BoldStyle.Render("Transactie"),
				cli.BoldStyle.Render("Methode"),
				cli.BoldStyle.Render("Grootboek"),
				cli.BoldStyle.Render("BTW"),
				cli.BoldStyle.Render("Confidence"))

			for _, entry := range entries {
				txnID := entry.TransactionID
				if txnID == "" {
					txnID = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
					entry.CreatedAt.Format("02-01-2006 15:04"),
					txnID, entry.Method, entry.GrootboekCode,
					entry.BTWPercentage, entry.Confidence)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of records to show")

	return cmd
}
