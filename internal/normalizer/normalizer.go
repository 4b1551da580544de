// Package normalizer flattens storefront order webhooks into per-line-item
// OrderRecords. Extraction is fail-closed: a payload either produces one
// record per line item or none at all.
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"packline/internal/exclusion"
	"packline/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Description-line names the storefront uses for product options.
const (
	descriptionNameSize   = "Sizes"
	descriptionNameColour = "Colour"
)

// defaultPaymentStatus is assumed when the payload carries no payment status.
const defaultPaymentStatus = "NOT_PAID"

// Normalizer turns raw order payloads into OrderRecords. It holds no state
// across invocations and is safe for concurrent use.
type Normalizer struct {
	excluded exclusion.Set
	idgen    IDGenerator
	logger   zerolog.Logger
}

// New creates a Normalizer with the given exclusion set and id generator.
func New(excluded exclusion.Set, idgen IDGenerator, logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		excluded: excluded,
		idgen:    idgen,
		logger:   logger.With().Str("component", "normalizer").Logger(),
	}
}

// Extract normalizes one webhook payload. The result is one of:
//   - OutcomeExtracted with one record per line item, in payload order;
//   - OutcomeExcluded when the order number is on the exclusion list;
//   - OutcomeFailed when any field extraction hits a malformed value, in
//     which case the whole order is dropped.
func (n *Normalizer) Extract(payload model.RawOrderPayload) model.ExtractResult {
	records, outcome, err := n.extract(payload)
	switch outcome {
	case model.OutcomeExcluded:
		n.logger.Info().Msg("test order excluded, no records produced")
		return model.ExtractResult{Outcome: model.OutcomeExcluded, Err: model.ErrTestOrderExcluded}
	case model.OutcomeFailed:
		n.logger.Warn().Err(err).Msg("order extraction failed, order dropped")
		return model.ExtractResult{Outcome: model.OutcomeFailed, Err: err}
	default:
		return model.ExtractResult{Outcome: model.OutcomeExtracted, Records: records}
	}
}

func (n *Normalizer) extract(payload model.RawOrderPayload) ([]model.OrderRecord, model.ExtractOutcome, error) {
	data, err := mapAt(payload, "data")
	if err != nil {
		return nil, model.OutcomeFailed, fmt.Errorf("malformed payload: %w", err)
	}

	// The order number is the one field extraction cannot proceed without:
	// the exclusion check is keyed on it.
	orderNumber, err := intAt(data, "orderNumber", 0)
	if err != nil {
		return nil, model.OutcomeFailed, fmt.Errorf("malformed order number: %w", err)
	}
	if data == nil || orderNumber == 0 {
		return nil, model.OutcomeFailed, fmt.Errorf("payload has no order number")
	}

	if n.excluded.Contains(orderNumber) {
		return nil, model.OutcomeExcluded, nil
	}

	orderDate, err := n.parseOrderDate(data)
	if err != nil {
		return nil, model.OutcomeFailed, err
	}

	shared, err := n.extractShared(data, orderNumber, orderDate)
	if err != nil {
		return nil, model.OutcomeFailed, err
	}

	lineItems, err := sliceAt(data, "lineItems")
	if err != nil {
		return nil, model.OutcomeFailed, fmt.Errorf("malformed line items: %w", err)
	}

	records := make([]model.OrderRecord, 0, len(lineItems))
	for i, raw := range lineItems {
		item, ok := raw.(map[string]any)
		if !ok {
			return nil, model.OutcomeFailed, fmt.Errorf("line item %d is not an object", i+1)
		}

		record := shared
		if err := n.fillItem(&record, item, i+1); err != nil {
			return nil, model.OutcomeFailed, fmt.Errorf("line item %d: %w", i+1, err)
		}
		record.OrderID = n.idgen.OrderID(orderNumber, i+1)
		records = append(records, record)
	}

	n.logger.Debug().
		Int64("order_number", orderNumber).
		Int("line_items", len(records)).
		Msg("order extracted")

	return records, model.OutcomeExtracted, nil
}

// parseOrderDate reads the creation timestamp. Absence is tolerated;
// a malformed timestamp fails the order.
func (n *Normalizer) parseOrderDate(data map[string]any) (*time.Time, error) {
	created, err := stringAt(data, "createdDate")
	if err != nil {
		return nil, fmt.Errorf("malformed created date: %w", err)
	}
	if created == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("malformed created date %q: %w", created, err)
	}
	return &t, nil
}

// extractShared reads the order-level fields copied onto every line item's
// record.
func (n *Normalizer) extractShared(data map[string]any, orderNumber int64, orderDate *time.Time) (model.OrderRecord, error) {
	record := model.OrderRecord{
		OriginalOrderID: orderNumber,
		OrderDate:       orderDate,
		Quantity:        1,
	}

	paymentStatus, err := stringAt(data, "paymentStatus")
	if err != nil {
		return record, fmt.Errorf("malformed payment status: %w", err)
	}
	record.PaymentStatus = strings.ToUpper(paymentStatus)
	if record.PaymentStatus == "" {
		record.PaymentStatus = defaultPaymentStatus
	}

	fulfillmentStatus, err := stringAt(data, "status")
	if err != nil {
		return record, fmt.Errorf("malformed order status: %w", err)
	}
	record.FulfillmentStatus = strings.ToUpper(fulfillmentStatus)

	contact, err := mapAt(data, "contact")
	if err != nil {
		return record, fmt.Errorf("malformed contact: %w", err)
	}
	if record.Email, err = stringAt(contact, "email"); err != nil {
		return record, fmt.Errorf("malformed contact email: %w", err)
	}

	destination, err := mapAt(data, "shippingInfo", "logistics", "shippingDestination")
	if err != nil {
		return record, fmt.Errorf("malformed shipping destination: %w", err)
	}

	contactDetails, err := mapAt(destination, "contactDetails")
	if err != nil {
		return record, fmt.Errorf("malformed contact details: %w", err)
	}
	firstName, err := stringAt(contactDetails, "firstName")
	if err != nil {
		return record, fmt.Errorf("malformed first name: %w", err)
	}
	record.FirstName = cases.Title(language.English).String(strings.TrimSpace(firstName))
	lastName, err := stringAt(contactDetails, "lastName")
	if err != nil {
		return record, fmt.Errorf("malformed last name: %w", err)
	}
	record.LastName = strings.TrimSpace(lastName)
	if record.Phone, err = stringAt(contactDetails, "phone"); err != nil {
		return record, fmt.Errorf("malformed phone: %w", err)
	}

	address, err := mapAt(destination, "address")
	if err != nil {
		return record, fmt.Errorf("malformed address: %w", err)
	}
	if record.City, err = stringAt(address, "city"); err != nil {
		return record, fmt.Errorf("malformed city: %w", err)
	}
	if record.StreetAddress, err = stringAt(address, "addressLine"); err != nil {
		return record, fmt.Errorf("malformed street address: %w", err)
	}
	if record.Country, err = stringAt(address, "country"); err != nil {
		return record, fmt.Errorf("malformed country: %w", err)
	}
	if record.PostalCode, err = stringAt(address, "postalCode"); err != nil {
		return record, fmt.Errorf("malformed postal code: %w", err)
	}

	priceSummary, err := mapAt(data, "priceSummary")
	if err != nil {
		return record, fmt.Errorf("malformed price summary: %w", err)
	}
	if record.Subtotal, err = moneyAt(priceSummary, "subtotal"); err != nil {
		return record, fmt.Errorf("malformed subtotal: %w", err)
	}
	if record.Tax, err = moneyAt(priceSummary, "tax"); err != nil {
		return record, fmt.Errorf("malformed tax: %w", err)
	}
	if record.ShippingCharge, err = moneyAt(priceSummary, "shipping"); err != nil {
		return record, fmt.Errorf("malformed shipping charge: %w", err)
	}
	if record.Discount, err = moneyAt(priceSummary, "discount"); err != nil {
		return record, fmt.Errorf("malformed discount: %w", err)
	}
	if record.TotalAmount, err = moneyAt(priceSummary, "total"); err != nil {
		return record, fmt.Errorf("malformed total: %w", err)
	}

	return record, nil
}

// fillItem sets the line-item fields on a copy of the shared record.
func (n *Normalizer) fillItem(record *model.OrderRecord, item map[string]any, index int) error {
	record.ItemIndex = index

	var err error
	if record.TranslatedName, err = stringAt(item, "itemName"); err != nil {
		return fmt.Errorf("malformed item name: %w", err)
	}
	if record.SKU, err = stringAt(item, "sku"); err != nil {
		return fmt.Errorf("malformed sku: %w", err)
	}

	quantity, err := intAt(item, "quantity", 1)
	if err != nil {
		return fmt.Errorf("malformed quantity: %w", err)
	}
	record.Quantity = int(quantity)

	if record.TotalPrice, err = moneyAt(item, "totalPrice"); err != nil {
		return fmt.Errorf("malformed total price: %w", err)
	}

	lines, err := sliceAt(item, "descriptionLines")
	if err != nil {
		return fmt.Errorf("malformed description lines: %w", err)
	}
	record.Size, record.Color, err = scanDescriptionLines(lines)
	if err != nil {
		return err
	}

	return nil
}

// scanDescriptionLines picks the size and colour options out of a line item's
// description lines. The first entry per name wins; no match leaves the value
// empty.
func scanDescriptionLines(lines []any) (size, color string, err error) {
	for i, raw := range lines {
		line, ok := raw.(map[string]any)
		if !ok {
			return "", "", fmt.Errorf("description line %d is not an object", i+1)
		}

		name, err := stringAt(line, "name")
		if err != nil {
			return "", "", fmt.Errorf("description line %d: %w", i+1, err)
		}
		description, err := stringAt(line, "description")
		if err != nil {
			return "", "", fmt.Errorf("description line %d: %w", i+1, err)
		}

		switch name {
		case descriptionNameSize:
			if size == "" {
				size = description
			}
		case descriptionNameColour:
			if color == "" {
				color = description
			}
		}
	}
	return size, color, nil
}
