package model

// RawOrderPayload is the order webhook body as delivered by the storefront
// platform. The platform does not guarantee a stable schema, so the payload is
// kept opaque and only the paths the normalizer reads are interpreted. The
// core treats it as read-only.
type RawOrderPayload map[string]any

// ExtractOutcome classifies the result of normalizing one webhook payload.
type ExtractOutcome int

const (
	// OutcomeExtracted means the payload yielded one record per line item.
	OutcomeExtracted ExtractOutcome = iota

	// OutcomeExcluded means the order number is on the test-order exclusion
	// list and the payload was deliberately dropped.
	OutcomeExcluded

	// OutcomeFailed means extraction hit a malformed payload and the whole
	// order was dropped. No partial records are ever emitted.
	OutcomeFailed
)

// String returns the outcome name for logging.
func (o ExtractOutcome) String() string {
	switch o {
	case OutcomeExtracted:
		return "extracted"
	case OutcomeExcluded:
		return "excluded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExtractResult is the typed outcome of OrderNormalizer.Extract. Both
// OutcomeExcluded and OutcomeFailed carry zero records; they are distinguished
// so callers and logs can tell a filtered test order from a parse failure.
type ExtractResult struct {
	Outcome ExtractOutcome
	Records []OrderRecord
	Err     error
}

// WebhookResult is the response payload for an order webhook delivery.
type WebhookResult struct {
	Status   string   `json:"status"`
	OrderIDs []string `json:"orderIds,omitempty"`
}

// FulfillmentUpdate carries tracking details pushed by the fulfillment path.
type FulfillmentUpdate struct {
	TrackingNumber   string `json:"trackingNumber"`
	ShippingProvider string `json:"shippingProvider"`
	Status           string `json:"status"`
}

// OrderStats summarises stored order records for the reporting endpoint.
type OrderStats struct {
	TotalRows     int64   `json:"totalRows"`
	TotalOrders   int64   `json:"totalOrders"`
	PaidRows      int64   `json:"paidRows"`
	CODRows       int64   `json:"codRows"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalDiscount float64 `json:"totalDiscount"`
}
