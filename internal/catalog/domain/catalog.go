package domain

// DeliveryOption is one way to get an order to the buyer. Fee is a whole
// shilling UGX amount; pickup is free.
type DeliveryOption struct {
	ID       string `json:"id"`
	Fee      int64  `json:"fee"`
	Estimate string `json:"estimate"`
}

const (
	DeliverySafeBoda = "safeboda"
	DeliveryFaras    = "faras"
	DeliveryPersonal = "personal"
	DeliveryPickup   = "pickup"
)

// StaticDeliveryOptions is the built-in catalog used when the remote one
// is unavailable.
func StaticDeliveryOptions() []DeliveryOption {
	return []DeliveryOption{
		{ID: DeliverySafeBoda, Fee: 5000, Estimate: "1-2 hours"},
		{ID: DeliveryFaras, Fee: 8000, Estimate: "same day"},
		{ID: DeliveryPersonal, Fee: 3000, Estimate: "1-2 days"},
		{ID: DeliveryPickup, Fee: 0, Estimate: "at seller"},
	}
}

// DeliveryFee resolves a delivery method identifier to its fee. Unknown
// identifiers resolve to 0, meaning "no delivery fee known yet" rather
// than an error.
func DeliveryFee(options []DeliveryOption, id string) int64 {
	for _, opt := range options {
		if opt.ID == id {
			return opt.Fee
		}
	}
	return 0
}

// KnownDelivery reports whether id names an option in the catalog.
func KnownDelivery(options []DeliveryOption, id string) bool {
	for _, opt := range options {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// PaymentMethod identifies how the buyer pays.
type PaymentMethod string

const (
	PayMTNMoney       PaymentMethod = "mtn_money"
	PayAirtelMoney    PaymentMethod = "airtel_money"
	PayCard           PaymentMethod = "card"
	PayCashOnDelivery PaymentMethod = "cod"
)

// StaticPaymentMethods is the built-in payment catalog.
func StaticPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PayMTNMoney, PayAirtelMoney, PayCard, PayCashOnDelivery}
}

// MobileMoney reports whether the method bills a phone-linked wallet and
// therefore needs a mobile number on checkout.
func (m PaymentMethod) MobileMoney() bool {
	return m == PayMTNMoney || m == PayAirtelMoney
}
