package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"
	"clinicamia-assets/internal/core/domain"

	"github.com/shopspring/decimal"
)

func TestRegisterMaintenance(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	maintRepo := newFakeMaintenanceRepo()

	asset := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	if err := assetRepo.Create(ctx, asset); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	svc := NewMaintenanceService(assetRepo, maintRepo)

	performed := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	nextDue := time.Date(2027, 2, 10, 0, 0, 0, 0, time.UTC)
	record, err := svc.Register(ctx, asset.ID, &RegisterMaintenanceInput{
		Kind:            string(domain.MaintenancePreventive),
		Description:     "Annual calibration and cleaning",
		Cost:            decimal.NewFromInt(350000),
		Performer:       "BioMed Services SAS",
		Date:            &performed,
		NextMaintenance: &nextDue,
	}, 7)
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if record.AssetID != asset.ID {
		t.Errorf("AssetID = %d, want %d", record.AssetID, asset.ID)
	}
	if record.RegisteredBy != 7 {
		t.Errorf("RegisteredBy = %d, want 7", record.RegisteredBy)
	}
	if !record.Date.Equal(performed) {
		t.Errorf("Date = %v, want %v", record.Date, performed)
	}

	// Asset maintenance dates moved with the registration
	if asset.LastMaintenanceAt == nil || !asset.LastMaintenanceAt.Equal(performed) {
		t.Errorf("LastMaintenanceAt = %v, want %v", asset.LastMaintenanceAt, performed)
	}
	if asset.NextMaintenanceAt == nil || !asset.NextMaintenanceAt.Equal(nextDue) {
		t.Errorf("NextMaintenanceAt = %v, want %v", asset.NextMaintenanceAt, nextDue)
	}
}

func TestRegisterMaintenance_DefaultsDateToNow(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	maintRepo := newFakeMaintenanceRepo()

	asset := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	if err := assetRepo.Create(ctx, asset); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	svc := NewMaintenanceService(assetRepo, maintRepo)

	before := time.Now()
	record, err := svc.Register(ctx, asset.ID, &RegisterMaintenanceInput{
		Kind:        string(domain.MaintenanceCorrective),
		Description: "Replaced power supply",
	}, 1)
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if record.Date.Before(before) || record.Date.After(time.Now()) {
		t.Errorf("Date = %v, want roughly now", record.Date)
	}
}

func TestRegisterMaintenance_RevertsUnderMaintenanceToActive(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	maintRepo := newFakeMaintenanceRepo()

	asset := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	if err := assetRepo.Create(ctx, asset); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	asset.Status = "UnderMaintenance"

	svc := NewMaintenanceService(assetRepo, maintRepo)

	if _, err := svc.Register(ctx, asset.ID, &RegisterMaintenanceInput{
		Kind:        string(domain.MaintenanceCorrective),
		Description: "Repaired and returned to service",
	}, 1); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if asset.Status != "Active" {
		t.Errorf("Status = %s, want Active", asset.Status)
	}
}

func TestRegisterMaintenance_Validation(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	maintRepo := newFakeMaintenanceRepo()

	asset := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	if err := assetRepo.Create(ctx, asset); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	svc := NewMaintenanceService(assetRepo, maintRepo)

	if _, err := svc.Register(ctx, asset.ID, &RegisterMaintenanceInput{
		Kind:        "Overhaul",
		Description: "x",
	}, 1); !errors.Is(err, domain.ErrInvalidMaintenanceKind) {
		t.Errorf("invalid kind error = %v, want ErrInvalidMaintenanceKind", err)
	}

	if _, err := svc.Register(ctx, 999, &RegisterMaintenanceInput{
		Kind:        string(domain.MaintenancePreventive),
		Description: "x",
	}, 1); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("missing asset error = %v, want ErrAssetNotFound", err)
	}
}

func TestListByAsset(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	maintRepo := newFakeMaintenanceRepo()

	asset := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	if err := assetRepo.Create(ctx, asset); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	svc := NewMaintenanceService(assetRepo, maintRepo)

	for i := 0; i < 3; i++ {
		if _, err := svc.Register(ctx, asset.ID, &RegisterMaintenanceInput{
			Kind:        string(domain.MaintenancePreventive),
			Description: "Routine check",
		}, 1); err != nil {
			t.Fatalf("Register() error: %v", err)
		}
	}

	records, err := svc.ListByAsset(ctx, asset.ID)
	if err != nil {
		t.Fatalf("ListByAsset() error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("records = %d, want 3", len(records))
	}

	if _, err := svc.ListByAsset(ctx, 999); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("missing asset error = %v, want ErrAssetNotFound", err)
	}
}

func TestListDueSoonAndOverdue(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	maintRepo := newFakeMaintenanceRepo()

	overdue := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	past := time.Now().AddDate(0, 0, -5)
	overdue.NextMaintenanceAt = &past

	dueSoon := newTestAsset("EQ-002", "12000000", "0", 5, "0")
	soon := time.Now().AddDate(0, 0, 10)
	dueSoon.NextMaintenanceAt = &soon

	farOut := newTestAsset("EQ-003", "12000000", "0", 5, "0")
	far := time.Now().AddDate(0, 6, 0)
	farOut.NextMaintenanceAt = &far

	noSchedule := newTestAsset("EQ-004", "12000000", "0", 5, "0")

	retired := newTestAsset("EQ-005", "12000000", "0", 5, "0")
	retired.NextMaintenanceAt = &past
	retired.Status = "Decommissioned"

	for _, a := range []*models.Asset{overdue, dueSoon, farOut, noSchedule, retired} {
		if err := assetRepo.Create(ctx, a); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	svc := NewMaintenanceService(assetRepo, maintRepo)

	due, err := svc.ListDueSoon(ctx, 30)
	if err != nil {
		t.Fatalf("ListDueSoon() error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due soon = %d assets, want 2", len(due))
	}
	codes := map[string]bool{due[0].Code: true, due[1].Code: true}
	if !codes["EQ-001"] || !codes["EQ-002"] {
		t.Errorf("due soon codes = %v, want EQ-001 and EQ-002", codes)
	}

	late, err := svc.ListOverdue(ctx)
	if err != nil {
		t.Fatalf("ListOverdue() error: %v", err)
	}
	if len(late) != 1 {
		t.Fatalf("overdue = %d assets, want 1", len(late))
	}
	if late[0].Code != "EQ-001" {
		t.Errorf("overdue code = %s, want EQ-001", late[0].Code)
	}
}
