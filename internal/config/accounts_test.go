package config

import (
	"testing"

	"clinicamia-assets/internal/core/domain"
)

func TestDefaultAccountsConfig(t *testing.T) {
	cfg := defaultAccountsConfig()

	// Every known asset type must have a PUC account pair
	types := []domain.AssetType{
		domain.AssetTypeMedicalEquipment,
		domain.AssetTypeFurniture,
		domain.AssetTypeVehicle,
		domain.AssetTypeRealEstate,
		domain.AssetTypeTechnology,
	}
	for _, at := range types {
		pair, ok := cfg.Mapping[at]
		if !ok {
			t.Errorf("no account pair for %s", at)
			continue
		}
		if pair.ExpenseAccount == "" || pair.AccumulatedAccount == "" {
			t.Errorf("incomplete account pair for %s: %+v", at, pair)
		}
	}

	if cfg.Fallback.ExpenseAccount != "516595" || cfg.Fallback.AccumulatedAccount != "159295" {
		t.Errorf("fallback = %+v, want 516595/159295", cfg.Fallback)
	}
}

func TestAccountsResolve(t *testing.T) {
	cfg := defaultAccountsConfig()

	pair := cfg.Resolve(domain.AssetTypeMedicalEquipment)
	if pair.ExpenseAccount != "516515" || pair.AccumulatedAccount != "159215" {
		t.Errorf("medical equipment pair = %+v, want 516515/159215", pair)
	}

	// Unknown types land on the fallback pair instead of failing
	pair = cfg.Resolve(domain.AssetType("Artwork"))
	if pair != cfg.Fallback {
		t.Errorf("unknown type pair = %+v, want fallback %+v", pair, cfg.Fallback)
	}
}
