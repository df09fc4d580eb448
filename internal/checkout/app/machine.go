package app

import (
	"context"
	"errors"
	"log/slog"

	catalogdomain "github.com/kasoma/sokocart/internal/catalog/domain"
	"github.com/kasoma/sokocart/internal/checkout/domain"
	orderdomain "github.com/kasoma/sokocart/internal/order/domain"
)

// Step is the checkout position. AddressEntry is initial; Completed and
// Failed are terminal, so a new attempt needs a new Machine.
type Step int

const (
	StepAddressEntry Step = iota
	StepDeliverySelection
	StepPaymentSelection
	StepSubmitting
	StepCompleted
	StepFailed
)

func (s Step) String() string {
	switch s {
	case StepAddressEntry:
		return "address_entry"
	case StepDeliverySelection:
		return "delivery_selection"
	case StepPaymentSelection:
		return "payment_selection"
	case StepSubmitting:
		return "submitting"
	case StepCompleted:
		return "completed"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidTransition rejects an operation that does not belong to
	// the current step, including anything after a terminal step.
	ErrInvalidTransition = errors.New("operation not valid in current checkout step")

	// ErrSubmitInFlight rejects a second Submit while one is running.
	ErrSubmitInFlight = errors.New("order submission already in flight")
)

// Machine walks one checkout attempt through its steps. Forward
// transitions are gated on step-local validation; moving backward keeps
// everything already entered. The machine instance is the per-session
// mutual exclusion for submission: callers create one per attempt and
// drop it at a terminal step.
type Machine struct {
	cart    CartSource
	gateway OrderGateway
	options []catalogdomain.DeliveryOption
	log     *slog.Logger

	step     Step
	subtotal int64

	address     domain.Address
	delivery    string
	deliveryFee int64
	payment     catalogdomain.PaymentMethod
	mobile      string

	ref     orderdomain.OrderRef
	failure string
}

// NewMachine starts a fresh attempt at AddressEntry. The subtotal shown
// throughout checkout is captured from the cart here.
func NewMachine(cart CartSource, gateway OrderGateway, options []catalogdomain.DeliveryOption, log *slog.Logger) *Machine {
	return &Machine{
		cart:     cart,
		gateway:  gateway,
		options:  options,
		log:      log,
		step:     StepAddressEntry,
		subtotal: cart.Subtotal(),
	}
}

func (m *Machine) Step() Step { return m.step }

// Total is the running checkout total: the entry-time subtotal plus the
// delivery fee, which is 0 until a method has been chosen.
func (m *Machine) Total() int64 { return m.subtotal + m.deliveryFee }

func (m *Machine) Subtotal() int64                      { return m.subtotal }
func (m *Machine) Address() domain.Address              { return m.address }
func (m *Machine) Delivery() (string, int64)            { return m.delivery, m.deliveryFee }
func (m *Machine) Payment() catalogdomain.PaymentMethod { return m.payment }
func (m *Machine) MobileNumber() string                 { return m.mobile }

// OrderRef is the reference returned by the gateway; only meaningful at
// StepCompleted.
func (m *Machine) OrderRef() orderdomain.OrderRef { return m.ref }

// FailureMessage is the user-displayable reason for StepFailed.
func (m *Machine) FailureMessage() string { return m.failure }

// SubmitAddress validates the address and advances to DeliverySelection.
// On a validation error the machine stays put and the address fields the
// buyer already typed are retained for correction.
func (m *Machine) SubmitAddress(addr domain.Address) error {
	if m.step != StepAddressEntry {
		return ErrInvalidTransition
	}

	m.address = addr
	if err := addr.Validate(); err != nil {
		return err
	}

	m.step = StepDeliverySelection
	return nil
}

// ChooseDelivery records the delivery method, resolves its fee from the
// catalog and advances to PaymentSelection. An identifier missing from
// the catalog still goes through with fee 0: the fee lookup treats
// unknown methods as "no delivery fee known yet".
func (m *Machine) ChooseDelivery(method string) error {
	if m.step != StepDeliverySelection {
		return ErrInvalidTransition
	}
	if method == "" {
		return &domain.ValidationError{Fields: []string{"delivery_method"}, Reason: "no delivery method selected"}
	}

	m.delivery = method
	m.deliveryFee = catalogdomain.DeliveryFee(m.options, method)
	m.step = StepPaymentSelection
	return nil
}

// ChoosePayment records the payment method. Mobile-money methods require
// a mobile number that is well formed and on the provider's own network;
// a wrong-network number is rejected distinctly from a malformed one.
func (m *Machine) ChoosePayment(method catalogdomain.PaymentMethod, mobileNumber string) error {
	if m.step != StepPaymentSelection {
		return ErrInvalidTransition
	}
	if method == "" {
		return &domain.ValidationError{Fields: []string{"payment_method"}, Reason: "no payment method selected"}
	}

	if method.MobileMoney() {
		if !domain.ValidPhone(mobileNumber) {
			return domain.ErrInvalidPhone
		}
		if domain.ResolveNetwork(mobileNumber) != providerNetwork(method) {
			return domain.ErrWrongNetwork
		}
		m.mobile = mobileNumber
	} else {
		m.mobile = ""
	}

	m.payment = method
	return nil
}

// Back moves one step toward AddressEntry without revalidating the step
// being left. Entered data stays in place.
func (m *Machine) Back() error {
	switch m.step {
	case StepDeliverySelection:
		m.step = StepAddressEntry
		return nil
	case StepPaymentSelection:
		m.step = StepDeliverySelection
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Submit assembles the order from the current cart lines and the
// accumulated selections and sends it through the gateway. Success clears
// the cart and lands on Completed with the order reference; any gateway
// error lands on Failed with a displayable message and leaves the cart
// untouched for a retry with a fresh Machine.
func (m *Machine) Submit(ctx context.Context) (orderdomain.OrderRef, error) {
	switch m.step {
	case StepPaymentSelection:
	case StepSubmitting:
		return orderdomain.OrderRef{}, ErrSubmitInFlight
	default:
		return orderdomain.OrderRef{}, ErrInvalidTransition
	}

	if m.payment == "" {
		return orderdomain.OrderRef{}, &domain.ValidationError{Fields: []string{"payment_method"}, Reason: "no payment method selected"}
	}

	order, err := orderdomain.Assemble(m.cart.Items(), m.address, m.delivery, m.deliveryFee, string(m.payment), m.mobile)
	if err != nil {
		return orderdomain.OrderRef{}, err
	}

	m.step = StepSubmitting
	m.log.Info("submitting order",
		slog.Int64("total", order.TotalAmount),
		slog.String("delivery", order.DeliveryMethod),
		slog.String("payment", order.PaymentMethod),
	)

	// An in-flight submission has no cancellation path: the caller
	// navigating away must not turn a possibly-landed order into a
	// failure. The gateway's own timeout bounds the call.
	ref, err := m.gateway.SubmitOrder(context.WithoutCancel(ctx), order)
	if err != nil {
		m.step = StepFailed
		m.failure = err.Error()
		m.log.Warn("order submission failed", slog.Any("err", err))
		return orderdomain.OrderRef{}, err
	}

	m.cart.Clear()
	m.ref = ref
	m.step = StepCompleted
	m.log.Info("order completed", slog.String("reference", ref.Reference))
	return ref, nil
}

func providerNetwork(method catalogdomain.PaymentMethod) domain.Network {
	switch method {
	case catalogdomain.PayMTNMoney:
		return domain.NetworkMTN
	case catalogdomain.PayAirtelMoney:
		return domain.NetworkAirtel
	default:
		return domain.NetworkUnknown
	}
}
