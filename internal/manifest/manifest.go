// Package manifest derives carrier-manifest entries from normalized order
// records. Derivation is a pure function: the same record always yields the
// same manifest entry.
package manifest

import (
	"fmt"
	"strings"

	"packline/internal/config"
	"packline/internal/model"
)

// Builder derives one ManifestRecord per OrderRecord using the configured
// carrier constants.
type Builder struct {
	cfg config.ManifestConfig
}

// NewBuilder creates a Builder with the given carrier constants.
func NewBuilder(cfg config.ManifestConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build derives the manifest entry for one order record. It is total: any
// record produced by the normalizer yields a manifest entry.
//
// Pricing: the unit item price is the line total minus the discount, plus a
// flat cash-on-delivery surcharge when the order is unpaid and the base price
// is below the configured threshold. Prepaid or high-value orders carry no
// surcharge.
func (b *Builder) Build(record model.OrderRecord) model.ManifestRecord {
	basePrice := record.TotalPrice - record.Discount

	paymentMode := model.PaymentModeCOD
	if record.PaymentStatus == model.PaymentStatusPaid {
		paymentMode = model.PaymentModePrepaid
	}

	unitItemPrice := basePrice
	if paymentMode == model.PaymentModeCOD && basePrice < b.cfg.CODThreshold {
		unitItemPrice += b.cfg.CODSurcharge
	}

	return model.ManifestRecord{
		SaleOrderNumber: b.cfg.SaleOrderPrefix + record.OrderID,
		OrderID:         record.OrderID,
		PickupLocation:  b.cfg.PickupLocation,
		TransportMode:   b.cfg.TransportMode,
		PaymentMode:     paymentMode,

		CustomerName: strings.TrimSpace(record.FirstName + " " + record.LastName),
		Email:        record.Email,
		Phone:        record.Phone,
		Address:      record.StreetAddress,
		City:         record.City,
		// The carrier contract expects a state; the storefront address has
		// none, so a configured default is used for every entry.
		State:      b.cfg.State,
		Country:    record.Country,
		PostalCode: record.PostalCode,

		ItemSKU:       record.SKU,
		ItemSKUName:   skuDisplayName(record),
		Quantity:      record.Quantity,
		UnitItemPrice: unitItemPrice,

		PackageLengthCM: b.cfg.PackageLengthCM,
		PackageWidthCM:  b.cfg.PackageWidthCM,
		PackageHeightCM: b.cfg.PackageHeightCM,
		WeightGrams:     b.cfg.WeightGrams,
	}
}

// skuDisplayName composes the carrier-facing item description. Size is
// upper-cased for display, colour is passed through as-is.
func skuDisplayName(record model.OrderRecord) string {
	return fmt.Sprintf("%s - Size: %s - Colour: %s",
		record.TranslatedName,
		strings.ToUpper(record.Size),
		record.Color,
	)
}
