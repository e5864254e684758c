package services

// CheckoutState is where a visitor is in the checkout flow.
type CheckoutState string

const (
	// StateNone is the state before the checkout page is entered.
	StateNone CheckoutState = ""
	// StateRedirect means the cart is empty and the visitor is sent back to the catalog.
	StateRedirect CheckoutState = "redirect"
	// StateBlocked means nobody is signed in; the form is disabled.
	StateBlocked CheckoutState = "blocked"
	// StateEditable means the form is open with the session's fields locked.
	StateEditable CheckoutState = "editable"
	// StateSubmitted means the order was placed.
	StateSubmitted CheckoutState = "submitted"
)

// CheckoutEvent drives the checkout state machine.
type CheckoutEvent string

const (
	EventEnter         CheckoutEvent = "enter"
	EventAuthSucceeded CheckoutEvent = "auth_succeeded"
	EventSubmitted     CheckoutEvent = "submitted"
)

// CheckoutSnapshot is what the state machine needs to know about the world.
type CheckoutSnapshot struct {
	CartEmpty     bool
	Authenticated bool
}

// NextCheckoutState is the pure transition function of the checkout flow.
// Redirect and Submitted are terminal. Events that do not apply to the
// current state leave it unchanged.
func NextCheckoutState(current CheckoutState, event CheckoutEvent, snap CheckoutSnapshot) CheckoutState {
	switch current {
	case StateRedirect, StateSubmitted:
		return current

	case StateNone:
		if event != EventEnter {
			return current
		}
		if snap.CartEmpty {
			return StateRedirect
		}
		if !snap.Authenticated {
			return StateBlocked
		}
		return StateEditable

	case StateBlocked:
		if event == EventAuthSucceeded && snap.Authenticated {
			return StateEditable
		}
		return current

	case StateEditable:
		if event == EventSubmitted {
			return StateSubmitted
		}
		return current
	}
	return current
}
