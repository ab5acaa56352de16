package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"clinicamia-assets/internal/core/domain"
)

// AccountsConfig maps asset types to their PUC (Plan Único de Cuentas)
// depreciation accounts. Supplied at startup; unknown types resolve to the
// Fallback pair.
type AccountsConfig struct {
	Mapping  map[domain.AssetType]domain.AccountPair `json:"mapping"`
	Fallback domain.AccountPair                      `json:"fallback"`
}

// defaultAccountsConfig returns the built-in PUC Colombia account mapping
func defaultAccountsConfig() AccountsConfig {
	return AccountsConfig{
		Mapping: map[domain.AssetType]domain.AccountPair{
			domain.AssetTypeMedicalEquipment: {ExpenseAccount: "516515", AccumulatedAccount: "159215"},
			domain.AssetTypeFurniture:        {ExpenseAccount: "516510", AccumulatedAccount: "159210"},
			domain.AssetTypeVehicle:          {ExpenseAccount: "516520", AccumulatedAccount: "159220"},
			domain.AssetTypeRealEstate:       {ExpenseAccount: "516505", AccumulatedAccount: "159205"},
			domain.AssetTypeTechnology:       {ExpenseAccount: "516525", AccumulatedAccount: "159225"},
		},
		Fallback: domain.AccountPair{ExpenseAccount: "516595", AccumulatedAccount: "159295"},
	}
}

// loadAccountsConfig loads the GL account mapping, optionally overridden by a
// JSON file pointed at by GL_ACCOUNTS_FILE
func loadAccountsConfig() (AccountsConfig, error) {
	cfg := defaultAccountsConfig()

	path := os.Getenv("GL_ACCOUNTS_FILE")
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read GL accounts file %s: %w", path, err)
	}

	var override AccountsConfig
	if err := json.Unmarshal(data, &override); err != nil {
		return cfg, fmt.Errorf("failed to parse GL accounts file %s: %w", path, err)
	}

	if len(override.Mapping) > 0 {
		cfg.Mapping = override.Mapping
	}
	if override.Fallback.ExpenseAccount != "" {
		cfg.Fallback = override.Fallback
	}

	log.Printf("✅ GL account mapping loaded from %s", path)
	return cfg, nil
}

// Resolve returns the account pair for an asset type, falling back to the
// "other" bucket for unknown types
func (c *AccountsConfig) Resolve(t domain.AssetType) domain.AccountPair {
	if pair, ok := c.Mapping[t]; ok {
		return pair
	}
	return c.Fallback
}
