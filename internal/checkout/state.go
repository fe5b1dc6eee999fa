package checkout

// State is one phase of the checkout workflow. Each concrete type carries
// exactly the identifiers that phase has captured, so a phase without its
// prerequisites (for example awaiting confirmation with no payment session)
// cannot be constructed.
type State interface {
	state()
}

// Idle is the initial state: no checkout attempt is in progress.
type Idle struct{}

// OrderSubmitting means the order creation request is in flight.
type OrderSubmitting struct{}

// PaymentIntentPending means the order exists server-side and the payment
// session request is in flight.
type PaymentIntentPending struct {
	OrderID int64
}

// AwaitingConfirmation means a payment session is open and the workflow is
// waiting for the guest to confirm. Confirming is set while a confirmation
// request is in flight.
type AwaitingConfirmation struct {
	OrderID    int64
	PaymentID  int64
	Confirming bool
}

// Confirmed is the terminal success state for the attempt.
type Confirmed struct {
	OrderID int64
}

// OrderFailed means order creation failed; nothing exists server-side and the
// guest may start over without losing the cart.
type OrderFailed struct {
	Cause string
}

// PaymentFailed means the order was created but opening the payment session
// failed. The order id is retained so a retry resumes from intent creation
// instead of creating a duplicate order.
type PaymentFailed struct {
	OrderID int64
	Cause   string
}

func (Idle) state()                 {}
func (OrderSubmitting) state()      {}
func (PaymentIntentPending) state() {}
func (AwaitingConfirmation) state() {}
func (Confirmed) state()            {}
func (OrderFailed) state()          {}
func (PaymentFailed) state()        {}
