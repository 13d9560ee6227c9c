// Package config provides configuration utilities for the application.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/florijnhq/florijn/internal/model"
)

// LoadStatementHeader loads the export header context with this precedence:
// 1. Viper configuration (from config file or FLORIJN_ env vars)
// 2. Direct environment variables (FLORIJN_BANK_*)
// 3. Empty values, which the exporters replace with format defaults
func LoadStatementHeader() model.StatementHeader {
	header := model.StatementHeader{
		BankName:      viper.GetString("statement.bank"),
		AccountNumber: viper.GetString("statement.account"),
		OwnerName:     viper.GetString("statement.owner"),
	}

	if header.BankName == "" {
		header.BankName = os.Getenv("FLORIJN_BANK_NAME")
	}
	if header.AccountNumber == "" {
		header.AccountNumber = os.Getenv("FLORIJN_BANK_ACCOUNT")
	}
	if header.OwnerName == "" {
		header.OwnerName = os.Getenv("FLORIJN_BANK_OWNER")
	}

	return header
}
