package service

import (
	"errors"
	"strings"
	"testing"

	"vendor-service/internal/model"

	"gorm.io/gorm"
)

func TestGenerateVendorCodeFormat(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		code := GenerateVendorCode()

		if len(code) != vendorCodeLen {
			t.Fatalf("code %q has length %d, want %d", code, len(code), vendorCodeLen)
		}
		for _, r := range code {
			if !strings.ContainsRune("0123456789abcdef", r) {
				t.Fatalf("code %q contains non-lowercase-hex character %q", code, r)
			}
		}
		seen[code] = true
	}

	// 1000 draws from a 16^5 space should produce mostly distinct codes;
	// a single repeated value for every draw would mean a broken generator.
	if len(seen) < 2 {
		t.Errorf("generator produced %d distinct codes out of 1000 draws", len(seen))
	}
}

func TestCreateVendorRetriesGeneratedCodeOnCollision(t *testing.T) {
	vendor := model.Vendor{Name: "Acme Metals"}

	// First two inserts collide on the unique index, third lands
	var attempts int
	var codes []string
	err := createVendorWithRetry(&vendor, func(v *model.Vendor) error {
		attempts++
		codes = append(codes, v.VendorCode)
		if attempts < 3 {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})
	if err != nil {
		t.Fatalf("createVendorWithRetry failed: %v", err)
	}

	if attempts != 3 {
		t.Errorf("attempts: got %d, want 3", attempts)
	}
	if vendor.VendorCode == "" {
		t.Error("vendor code not assigned after retries")
	}
	if len(codes) == 3 && codes[0] == codes[1] && codes[1] == codes[2] {
		t.Errorf("collided code %q was never regenerated", codes[0])
	}
	if len(vendor.VendorCode) != vendorCodeLen {
		t.Errorf("code %q has length %d, want %d", vendor.VendorCode, len(vendor.VendorCode), vendorCodeLen)
	}
}

func TestCreateVendorSuppliedCodeConflicts(t *testing.T) {
	vendor := model.Vendor{Name: "Acme Metals", VendorCode: "ab123"}

	var attempts int
	err := createVendorWithRetry(&vendor, func(v *model.Vendor) error {
		attempts++
		return gorm.ErrDuplicatedKey
	})

	if !errors.Is(err, ErrVendorCodeTaken) {
		t.Errorf("error: got %v, want ErrVendorCodeTaken", err)
	}
	if attempts != 1 {
		t.Errorf("attempts: got %d, want 1 (caller-supplied codes are not retried)", attempts)
	}
	if vendor.VendorCode != "ab123" {
		t.Errorf("supplied code was rewritten to %q", vendor.VendorCode)
	}
}

func TestCreateVendorExhaustsRetries(t *testing.T) {
	vendor := model.Vendor{Name: "Acme Metals"}

	var attempts int
	err := createVendorWithRetry(&vendor, func(v *model.Vendor) error {
		attempts++
		return gorm.ErrDuplicatedKey
	})

	if !errors.Is(err, ErrVendorCodeExhausted) {
		t.Errorf("error: got %v, want ErrVendorCodeExhausted", err)
	}
	if attempts != vendorCodeAttempts {
		t.Errorf("attempts: got %d, want %d", attempts, vendorCodeAttempts)
	}
}

func TestCreateVendorPropagatesOtherErrors(t *testing.T) {
	vendor := model.Vendor{Name: "Acme Metals"}
	dbDown := errors.New("connection refused")

	var attempts int
	err := createVendorWithRetry(&vendor, func(v *model.Vendor) error {
		attempts++
		return dbDown
	})

	if !errors.Is(err, dbDown) {
		t.Errorf("error: got %v, want the insert error", err)
	}
	if attempts != 1 {
		t.Errorf("attempts: got %d, want 1 (non-duplicate errors are not retried)", attempts)
	}
}
