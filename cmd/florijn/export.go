package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/florijnhq/florijn/internal/btw"
	"github.com/florijnhq/florijn/internal/cli"
	"github.com/florijnhq/florijn/internal/config"
	"github.com/florijnhq/florijn/internal/engine"
	"github.com/florijnhq/florijn/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		format  string
		outDir  string
		bank    string
		account string
		owner   string
		lenient bool
	)

	cmd := &cobra.Command{
		Use:   "export <transactions.csv>",
		Short: "Classify transactions and export a statement file",
		Long: `Classify a transaction CSV and write an accountant-ready statement.

Supported formats:
  xlsx   spreadsheet workbook with a VAT summary sheet
  csv    semicolon-separated CSV with running balance
  mt940  SWIFT MT940 statement (.sta)
  camt   ISO 20022 camt.053 XML
  qbo    QuickBooks Web Connect (OFX SGML)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			exporter, err := exporterFor(format)
			if err != nil {
				return err
			}

			txns, skipped, err := readTransactions(args[0], !lenient)
			if err != nil {
				return err
			}
			for _, rowErr := range skipped {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("skipped %v", &rowErr)))
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng := engine.New(store, store, btw.NewDefaultClassifier())
			classified, err := eng.ClassifyTransactions(ctx, currentUser(), txns)
			if err != nil {
				return err
			}

			header := config.LoadStatementHeader()
			if bank != "" {
				header.BankName = bank
			}
			if account != "" {
				header.AccountNumber = account
			}
			if owner != "" {
				header.OwnerName = owner
			}

			doc, err := exporter.Export(&export.Statement{Header: header, Rows: classified})
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", format, err)
			}

			outPath := filepath.Join(outDir, doc.Filename)
			if err := os.WriteFile(outPath, doc.Bytes, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("exported %d transactions to %s", len(classified), outPath)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "output format (xlsx, csv, mt940, camt, qbo)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&bank, "bank", "", "bank name for the statement header")
	cmd.Flags().StringVar(&account, "account", "", "IBAN / account number for the statement header")
	cmd.Flags().StringVar(&owner, "owner", "", "account owner name for the statement header")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip unparseable rows instead of failing")

	return cmd
}

func exporterFor(format string) (export.Exporter, error) {
	switch strings.ToLower(format) {
	case "xlsx", "excel":
		return export.NewWorkbookExporter(), nil
	case "csv":
		return export.NewCSVExporter(), nil
	case "mt940", "sta":
		return export.NewMT940Exporter(), nil
	case "camt", "xml":
		return export.NewCAMTExporter(), nil
	case "qbo", "ofx":
		return export.NewQBOExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (expected xlsx, csv, mt940, camt or qbo)", format)
	}
}
