package service

import (
	"errors"
	"strings"

	"vendor-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// vendorCodeLen is the length of a generated vendor code.
const vendorCodeLen = 5

// vendorCodeAttempts bounds the generate-then-insert loop. Collisions in a
// 5-hex-char space are rare but real; exhaustion surfaces as a conflict.
const vendorCodeAttempts = 5

// ErrVendorCodeExhausted is returned when code generation keeps colliding
// with existing vendors.
var ErrVendorCodeExhausted = errors.New("could not generate a unique vendor code")

// ErrVendorCodeTaken is returned when a caller-supplied vendor code is
// already in use.
var ErrVendorCodeTaken = errors.New("vendor code already in use")

// GenerateVendorCode returns a random 5-character lowercase hexadecimal
// vendor code.
func GenerateVendorCode() string {
	id := uuid.New()
	hex := strings.ReplaceAll(id.String(), "-", "")
	return hex[:vendorCodeLen]
}

// CreateVendor inserts a vendor, generating a vendor code when the caller
// did not supply one. The unique index on vendor_code is the arbiter: a
// duplicate-key insert with a generated code is retried with a fresh code,
// so a concurrent insert landing between generation and insert never
// surfaces as an internal error. Caller-supplied codes are not retried; a
// collision there is the caller's conflict.
func CreateVendor(db *gorm.DB, vendor *model.Vendor) error {
	return createVendorWithRetry(vendor, func(v *model.Vendor) error {
		return db.Create(v).Error
	})
}

func createVendorWithRetry(vendor *model.Vendor, insert func(*model.Vendor) error) error {
	supplied := vendor.VendorCode != ""

	for attempt := 0; attempt < vendorCodeAttempts; attempt++ {
		if vendor.VendorCode == "" {
			vendor.VendorCode = GenerateVendorCode()
		}

		err := insert(vendor)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if supplied {
			return ErrVendorCodeTaken
		}

		// Generated code collided; draw a fresh one
		vendor.VendorCode = ""
		vendor.ID = 0
	}

	return ErrVendorCodeExhausted
}
