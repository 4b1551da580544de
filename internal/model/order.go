package model

import "time"

// OrderRecord is the canonical flat record for a single purchased line item.
// One storefront order with N line items produces N OrderRecords sharing the
// same OriginalOrderID but each with a unique OrderID.
type OrderRecord struct {
	OrderID           string     `json:"orderId" db:"order_id"`
	OriginalOrderID   int64      `json:"originalOrderId" db:"original_order_id"`
	OrderDate         *time.Time `json:"orderDate,omitempty" db:"order_date"`
	PaymentStatus     string     `json:"paymentStatus" db:"payment_status"`
	FulfillmentStatus string     `json:"fulfillmentStatus" db:"fulfillment_status"`

	FirstName     string `json:"firstName" db:"first_name"`
	LastName      string `json:"lastName" db:"last_name"`
	Email         string `json:"email" db:"email"`
	Phone         string `json:"phone" db:"phone"`
	City          string `json:"city" db:"city"`
	StreetAddress string `json:"streetAddress" db:"street_address"`
	Country       string `json:"country" db:"country"`
	PostalCode    string `json:"postalCode" db:"postal_code"`

	Subtotal       float64 `json:"subtotal" db:"subtotal"`
	Tax            float64 `json:"tax" db:"tax"`
	ShippingCharge float64 `json:"shippingCharge" db:"shipping_charge"`
	Discount       float64 `json:"discount" db:"discount"`
	TotalAmount    float64 `json:"totalAmount" db:"total_amount"`

	ItemIndex      int     `json:"itemIndex" db:"item_index"`
	TranslatedName string  `json:"translatedName" db:"translated_name"`
	SKU            string  `json:"sku" db:"sku"`
	Quantity       int     `json:"quantity" db:"quantity"`
	TotalPrice     float64 `json:"totalPrice" db:"total_price"`
	Size           string  `json:"size" db:"size"`
	Color          string  `json:"color" db:"color"`
	CustomSizeNote string  `json:"customSizeNote" db:"custom_size_note"`

	// Populated later by the fulfillment-update path, empty at creation.
	TrackingNumber   string `json:"trackingNumber" db:"tracking_number"`
	ShippingProvider string `json:"shippingProvider" db:"shipping_provider"`
	Weight           int    `json:"weight" db:"weight"`
}

// ManifestRecord is a carrier-facing manifest entry derived from exactly one
// OrderRecord.
type ManifestRecord struct {
	SaleOrderNumber string `json:"saleOrderNumber" db:"sale_order_number"`
	OrderID         string `json:"orderId" db:"order_id"`
	PickupLocation  string `json:"pickupLocation" db:"pickup_location"`
	TransportMode   string `json:"transportMode" db:"transport_mode"`
	PaymentMode     string `json:"paymentMode" db:"payment_mode"`

	CustomerName string `json:"customerName" db:"customer_name"`
	Email        string `json:"email" db:"email"`
	Phone        string `json:"phone" db:"phone"`
	Address      string `json:"address" db:"address"`
	City         string `json:"city" db:"city"`
	State        string `json:"state" db:"state"`
	Country      string `json:"country" db:"country"`
	PostalCode   string `json:"postalCode" db:"postal_code"`

	ItemSKU       string  `json:"itemSku" db:"item_sku"`
	ItemSKUName   string  `json:"itemSkuName" db:"item_sku_name"`
	Quantity      int     `json:"quantity" db:"quantity"`
	UnitItemPrice float64 `json:"unitItemPrice" db:"unit_item_price"`

	PackageLengthCM int `json:"packageLengthCm" db:"package_length_cm"`
	PackageWidthCM  int `json:"packageWidthCm" db:"package_width_cm"`
	PackageHeightCM int `json:"packageHeightCm" db:"package_height_cm"`
	WeightGrams     int `json:"weightGrams" db:"weight_grams"`
}

// Payment modes accepted by the carrier.
const (
	PaymentModePrepaid = "Prepaid"
	PaymentModeCOD     = "COD"
)

// PaymentStatusPaid is the normalizer's uppercase marker for a settled order.
const PaymentStatusPaid = "PAID"
