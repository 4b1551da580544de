package normalizer

import (
	"fmt"
	"strings"

	"packline/internal/clock"
)

// IDGenerator derives the per-line-item order id.
type IDGenerator interface {
	// OrderID builds the unique id for one line item of an order.
	// itemIndex is 1-based.
	OrderID(orderNumber int64, itemIndex int) string
}

// WeekdayIDGenerator derives ids as {orderNumber}Q{index}{WEEKDAY}, where
// WEEKDAY is the three-letter uppercase weekday of the processing date. This
// is the historical scheme: reprocessing the same payload on a different
// weekday yields different ids, so upserts only deduplicate same-day retries.
type WeekdayIDGenerator struct {
	Clock clock.Clock
}

// OrderID builds the weekday-suffixed id for one line item.
func (g WeekdayIDGenerator) OrderID(orderNumber int64, itemIndex int) string {
	weekday := strings.ToUpper(g.Clock.Now().Weekday().String()[:3])
	return fmt.Sprintf("%dQ%d%s", orderNumber, itemIndex, weekday)
}

// StableIDGenerator derives ids as {orderNumber}Q{index}. Ids depend only on
// order content, so a retried webhook always hits the same upsert key.
type StableIDGenerator struct{}

// OrderID builds the content-derived id for one line item.
func (StableIDGenerator) OrderID(orderNumber int64, itemIndex int) string {
	return fmt.Sprintf("%dQ%d", orderNumber, itemIndex)
}
