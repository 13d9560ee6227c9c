package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/florijnhq/florijn/internal/btw"
	"github.com/florijnhq/florijn/internal/cli"
	"github.com/florijnhq/florijn/internal/engine"
	"github.com/florijnhq/florijn/internal/model"
)

func classifyCmd() *cobra.Command {
	var (
		lenient bool
		noAudit bool
	)

	cmd := &cobra.Command{
		Use:   "classify <transactions.csv>",
		Short: "Classify transactions with VAT rates and category rules",
		Long: `Read a transaction CSV, detect the VAT rate for every transaction,
apply your categorization rules, and print the results with a trust
verdict per transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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

			eng := engine.New(store, auditSink(store, noAudit), btw.NewDefaultClassifier())
			classified, err := eng.ClassifyTransactions(ctx, currentUser(), txns)
			if err != nil {
				return err
			}

			printClassified(classified)
			printSummary(classified, len(skipped))
			return nil
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip unparseable rows instead of failing")
	cmd.Flags().BoolVar(&noAudit, "no-audit", false, "skip writing audit records")

	return cmd
}

func printClassified(classified []model.ClassifiedTransaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("Datum"),
		cli.BoldStyle.Render("Omschrijving"),
		cli.BoldStyle.Render("Categorie"),
		cli.BoldStyle.Render("BTW"),
		cli.BoldStyle.Render("Bedrag"),
		cli.BoldStyle.Render("Vertrouwen"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 30),
		strings.Repeat("-", 20),
		strings.Repeat("-", 6),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10))

	for i := range classified {
		c := &classified[i]
		desc := c.Transaction.Description
		if len(desc) > 30 {
			desc = desc[:27] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Transaction.Date.Format("02-01-2006"),
			desc,
			c.CategoryLabel(),
			c.EffectiveRate(),
			c.Transaction.Amount.StringFixed(2),
			cli.FormatTrustBadge(c.Trust))
	}
}

func printSummary(classified []model.ClassifiedTransaction, skipped int) {
	var needsCheck, ruleMatched int
	income, expenses := decimal.Zero, decimal.Zero
	first, last := classified[0].Transaction.Date, classified[0].Transaction.Date
	for i := range classified {
		c := &classified[i]
		if c.Trust.RequiresCheck {
			needsCheck++
		}
		if c.Category.Matched() {
			ruleMatched++
		}
		if c.Transaction.IsCredit() {
			income = income.Add(c.Transaction.Amount)
		} else {
			expenses = expenses.Add(c.Transaction.Amount)
		}
		if c.Transaction.Date.Before(first) {
			first = c.Transaction.Date
		}
		if c.Transaction.Date.After(last) {
			last = c.Transaction.Date
		}
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%d transactions classified (%d by rule)", len(classified), ruleMatched)))
	fmt.Println(cli.StyleSubtle(fmt.Sprintf("  periode %s t/m %s",
		first.Format("02-01-2006"), last.Format("02-01-2006"))))
	fmt.Println(cli.StyleSubtle(fmt.Sprintf("  inkomsten %s, uitgaven %s, saldo %s",
		income.StringFixed(2), expenses.StringFixed(2), income.Add(expenses).StringFixed(2))))
	if needsCheck > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d transactions need a manual check", needsCheck)))
	}
	if skipped > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d rows skipped", skipped)))
	}

	for i := range classified {
		c := &classified[i]
		if c.Trust.Message != "" {
			fmt.Println(cli.StyleSubtle("  " + c.Trust.Message))
		}
	}
}
