// Package checkout drives the three-phase order-to-payment workflow:
// create order, open a payment session, confirm payment. The workflow is an
// explicit state machine; each phase's request is only issued from the
// previous phase's success path, so phases are strictly sequential.
package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"restaurant-client/internal/cart"
	"restaurant-client/internal/domain/order"
)

// Sentinel errors for workflow guards.
var (
	// ErrCheckoutInProgress is returned when Start is called while an attempt
	// is already in flight or has already created an order. Re-entrant starts
	// would create duplicate orders.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	// ErrNoPaymentSession is returned when ConfirmPayment is called without an
	// open payment session.
	ErrNoPaymentSession = errors.New("no payment session created yet")
	// ErrConfirmInFlight is returned when a confirmation request is already
	// pending for the current session.
	ErrConfirmInFlight = errors.New("payment confirmation already in flight")
	// ErrNoFailedIntent is returned when RetryPaymentIntent is called in any
	// state other than PaymentFailed.
	ErrNoFailedIntent = errors.New("no failed payment intent to retry")
	// ErrSuperseded is returned when a response arrives for an attempt that
	// was abandoned via Close. The response is discarded without touching
	// state.
	ErrSuperseded = errors.New("checkout attempt superseded")
)

// Gateway issues the three remote checkout calls. Implemented by api.Client.
type Gateway interface {
	CreateOrder(ctx context.Context, req order.CreateRequest) (int64, error)
	CreatePaymentIntent(ctx context.Context, orderID int64) (int64, error)
	ConfirmPayment(ctx context.Context, paymentID int64, cardNumber string) error
}

// HistoryLoader loads the guest's order history, refreshed after a
// successful confirmation.
type HistoryLoader interface {
	ListMyOrders(ctx context.Context) ([]order.Summary, error)
}

// userMessager is implemented by remote errors that carry a human-readable
// server message.
type userMessager interface {
	UserMessage() string
}

// Orchestrator owns the checkout state machine. All methods are safe for
// concurrent use; remote calls run outside the lock and their results are
// applied only if the attempt has not been superseded in the meantime.
type Orchestrator struct {
	gw      Gateway
	history HistoryLoader

	mu      sync.Mutex
	state   State
	attempt uint64

	cart            *cart.Cart
	orderType       order.Type
	deliveryAddress string
	notes           string

	errMsg     string
	successMsg string
	myOrders   []order.Summary
}

// New creates an Orchestrator in the Idle state over the given cart.
func New(c *cart.Cart, gw Gateway, history HistoryLoader) *Orchestrator {
	return &Orchestrator{
		gw:        gw,
		history:   history,
		state:     Idle{},
		cart:      c,
		orderType: order.TypePickup,
	}
}

// SetOrderType selects pickup or delivery fulfillment.
func (o *Orchestrator) SetOrderType(t order.Type) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.orderType = t
}

// SetDeliveryAddress sets the delivery address form field.
func (o *Orchestrator) SetDeliveryAddress(addr string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deliveryAddress = addr
}

// SetNotes sets the order notes form field.
func (o *Orchestrator) SetNotes(notes string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notes = notes
}

// State returns the current workflow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// ErrorMessage returns the current error text, empty when none.
func (o *Orchestrator) ErrorMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

// SuccessMessage returns the current success text, empty when none.
func (o *Orchestrator) SuccessMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.successMsg
}

// Orders returns the last loaded order history.
func (o *Orchestrator) Orders() []order.Summary {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]order.Summary, len(o.myOrders))
	copy(out, o.myOrders)
	return out
}

// RefreshOrders reloads the guest's order history into the orchestrator.
func (o *Orchestrator) RefreshOrders(ctx context.Context) error {
	rows, err := o.history.ListMyOrders(ctx)
	if err != nil {
		return errors.Wrap(err, "list my orders")
	}
	o.mu.Lock()
	o.myOrders = rows
	o.mu.Unlock()
	return nil
}

// Start begins a checkout attempt: it validates the cart and form fields
// locally, creates the order, and on success immediately opens the payment
// session. Validation failures never issue a network call and leave the
// state at Idle. Order creation failure moves to OrderFailed with the cart
// and form fields untouched.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	o.errMsg, o.successMsg = "", ""

	switch o.state.(type) {
	case Idle, OrderFailed, Confirmed:
	default:
		o.mu.Unlock()
		return ErrCheckoutInProgress
	}

	req := order.CreateRequest{
		Items:           o.cart.Items(),
		Type:            o.orderType,
		Notes:           strings.TrimSpace(o.notes),
		DeliveryAddress: strings.TrimSpace(o.deliveryAddress),
	}
	if err := req.Validate(); err != nil {
		o.errMsg = err.Error()
		o.mu.Unlock()
		return err
	}

	o.state = OrderSubmitting{}
	attempt := o.attempt
	o.mu.Unlock()

	orderID, err := o.gw.CreateOrder(ctx, req)

	o.mu.Lock()
	if attempt != o.attempt {
		o.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		o.state = OrderFailed{Cause: err.Error()}
		o.errMsg = remoteMessage(err, "Failed to place order. Please try again.")
		o.mu.Unlock()
		return errors.Wrap(err, "create order")
	}
	o.state = PaymentIntentPending{OrderID: orderID}
	o.mu.Unlock()

	zctx.From(ctx).Info("order created", zap.Int64("order_id", orderID))

	return o.createIntent(ctx, attempt, orderID)
}

// RetryPaymentIntent re-issues payment session creation after a
// PaymentFailed escape. The captured order id is reused; the order is never
// re-created, and no second session is requested once one exists.
func (o *Orchestrator) RetryPaymentIntent(ctx context.Context) error {
	o.mu.Lock()
	failed, ok := o.state.(PaymentFailed)
	if !ok {
		o.mu.Unlock()
		return ErrNoFailedIntent
	}
	o.errMsg = ""
	o.state = PaymentIntentPending{OrderID: failed.OrderID}
	attempt := o.attempt
	o.mu.Unlock()

	return o.createIntent(ctx, attempt, failed.OrderID)
}

func (o *Orchestrator) createIntent(ctx context.Context, attempt uint64, orderID int64) error {
	paymentID, err := o.gw.CreatePaymentIntent(ctx, orderID)

	o.mu.Lock()
	defer o.mu.Unlock()
	if attempt != o.attempt {
		return ErrSuperseded
	}
	if err != nil {
		o.state = PaymentFailed{OrderID: orderID, Cause: err.Error()}
		o.errMsg = remoteMessage(err, "Failed to start payment checkout.")
		return errors.Wrap(err, "create payment intent")
	}
	o.state = AwaitingConfirmation{OrderID: orderID, PaymentID: paymentID}
	return nil
}

// ConfirmPayment posts the confirmation for the open payment session.
// Success is the only transition that mutates the cart: the quantity map is
// reset, the notes and delivery address are cleared, and the order history
// is refreshed. Failure keeps the session so confirmation can be retried
// without re-creating the order.
func (o *Orchestrator) ConfirmPayment(ctx context.Context, cardNumber string) error {
	o.mu.Lock()
	awaiting, ok := o.state.(AwaitingConfirmation)
	if !ok {
		o.errMsg = ErrNoPaymentSession.Error()
		o.mu.Unlock()
		return ErrNoPaymentSession
	}
	if awaiting.Confirming {
		o.mu.Unlock()
		return ErrConfirmInFlight
	}
	awaiting.Confirming = true
	o.state = awaiting
	o.errMsg, o.successMsg = "", ""
	attempt := o.attempt
	o.mu.Unlock()

	err := o.gw.ConfirmPayment(ctx, awaiting.PaymentID, cardNumber)

	o.mu.Lock()
	if attempt != o.attempt {
		o.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		awaiting.Confirming = false
		o.state = awaiting
		o.errMsg = remoteMessage(err, "Payment failed.")
		o.mu.Unlock()
		return errors.Wrap(err, "confirm payment")
	}

	o.cart.Reset()
	o.notes = ""
	o.deliveryAddress = ""
	o.state = Confirmed{OrderID: awaiting.OrderID}
	o.successMsg = "Payment successful. Your order is confirmed."
	o.mu.Unlock()

	zctx.From(ctx).Info("payment confirmed",
		zap.Int64("order_id", awaiting.OrderID),
		zap.Int64("payment_id", awaiting.PaymentID),
	)

	// Refresh history outside the lock; a failure here is logged, not fatal.
	rows, herr := o.history.ListMyOrders(ctx)
	if herr != nil {
		zctx.From(ctx).Warn("refresh order history", zap.Error(herr))
		return nil
	}
	o.mu.Lock()
	if attempt == o.attempt {
		o.myOrders = rows
	}
	o.mu.Unlock()
	return nil
}

// Close abandons the current attempt and resets all checkout-local state to
// initial values. The quantity map and form fields are untouched. In-flight
// requests are not aborted; bumping the attempt counter makes their late
// responses discard themselves instead of resurrecting cleared state.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempt++
	o.state = Idle{}
	o.errMsg, o.successMsg = "", ""
}

// remoteMessage prefers the server-supplied human-readable message and falls
// back to step-specific text.
func remoteMessage(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return fallback
}
