package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/florijnhq/florijn/internal/cli"
	"github.com/florijnhq/florijn/internal/common"
	"github.com/florijnhq/florijn/internal/model"
	"github.com/florijnhq/florijn/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage categorization rules",
		Long:  `List, add, enable and disable the rules that map keywords to ledger codes and VAT rates.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(addRuleCmd())
	cmd.AddCommand(setRuleActiveCmd("enable", true))
	cmd.AddCommand(setRuleActiveCmd("disable", false))
	cmd.AddCommand(seedRulesCmd())

	return cmd
}

func listRulesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rules in evaluation order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var ruleSet []model.CategorizationRule
			if all {
				ruleSet, err = store.GetRules(ctx, currentUser())
			} else {
				ruleSet, err = store.GetActiveRules(ctx, currentUser())
			}
			if err != nil {
				return fmt.Errorf("failed to get rules: %w", err)
			}

			if len(ruleSet) == 0 {
				fmt.Println(cli.StyleSubtle("No rules found. Use 'florijn rules seed' to install the starter set."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Prioriteit"),
				cli.BoldStyle.Render("Keyword"),
				cli.BoldStyle.Render("Match"),
				cli.BoldStyle.Render("Grootboek"),
				cli.BoldStyle.Render("BTW"),
				cli.BoldStyle.Render("Categorie"),
				cli.BoldStyle.Render("Actief"))

			for _, rule := range ruleSet {
				active := cli.SuccessIcon
				if !rule.IsActive {
					active = cli.ErrorIcon
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					rule.ID, rule.Priority, rule.Keyword, rule.MatchType,
					rule.GrootboekCode, rule.BTWPercentage, rule.CategoryName, active)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include disabled rules")

	return cmd
}

func addRuleCmd() *cobra.Command {
	var (
		grootboek string
		btwRate   string
		category  string
		matchType string
		priority  int
	)

	cmd := &cobra.Command{
		Use:   "add <keyword>",
		Short: "Add a new categorization rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rate, err := model.ParseTaxRate(btwRate)
			if err != nil {
				return err
			}

			rule := model.CategorizationRule{
				UserID:        currentUser(),
				Keyword:       strings.TrimSpace(args[0]),
				GrootboekCode: grootboek,
				BTWPercentage: rate,
				CategoryName:  category,
				MatchType:     model.MatchType(matchType),
				Priority:      priority,
				IsActive:      true,
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateRule(ctx, &rule); err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					return common.NewUserError(fmt.Sprintf("a rule for keyword %q already exists", rule.Keyword), err)
				}
				return fmt.Errorf("failed to create rule: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("created rule %d for keyword %q", rule.ID, rule.Keyword)))
			return nil
		},
	}

	cmd.Flags().StringVar(&grootboek, "grootboek", "", "ledger account code (required)")
	cmd.Flags().StringVar(&btwRate, "btw", "", "VAT rate: a percentage, 'vrijgesteld', or empty for unknown")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	cmd.Flags().StringVar(&matchType, "match", string(model.MatchContains), "match type (contains, starts_with, ends_with, exact)")
	cmd.Flags().IntVar(&priority, "priority", 0, "rule priority, higher wins")
	_ = cmd.MarkFlagRequired("grootboek")

	return cmd
}

func setRuleActiveCmd(use string, active bool) *cobra.Command {
	short := "Disable a rule without deleting it"
	if active {
		short = "Re-enable a disabled rule"
	}

	return &cobra.Command{
		Use:   use + " <rule-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetRuleActive(ctx, currentUser(), id, active); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("rule %d %sd", id, use)))
			return nil
		},
	}
}

func seedRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the starter rule set",
		Long:  `Copy the default Dutch bookkeeping rules to your account. Does nothing if you already have rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			defaults := rules.DefaultRules()
			if err := store.SeedDefaultRules(ctx, currentUser(), defaults); err != nil {
				return err
			}

			common.LogInfo("Seeded starter rules", common.Fields{
				"user_id": currentUser(),
				"count":   len(defaults),
			})
			fmt.Println(cli.FormatSuccess("starter rules installed"))
			return nil
		},
	}
}
