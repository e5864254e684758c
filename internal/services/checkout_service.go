package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"equaline/internal/models"
	"equaline/internal/repositories"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// CheckoutForm is the checkout form as submitted.
type CheckoutForm struct {
	Name          string `json:"name" validate:"notblank"`
	Phone         string `json:"phone" validate:"notblank,display_phone"`
	Email         string `json:"email"`
	Address       string `json:"address" validate:"notblank"`
	DeliveryDate  string `json:"deliveryDate" validate:"notblank"`
	DeliveryTime  string `json:"deliveryTime" validate:"notblank"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"paymentMethod"`
	AgreeTerms    bool   `json:"agreeTerms" validate:"accepted"`
}

// Prefill holds the values copied from the session into the form.
type Prefill struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CheckoutView is everything the checkout page needs to render.
type CheckoutView struct {
	State           CheckoutState `json:"state"`
	Redirect        string        `json:"redirect,omitempty"`
	Items           models.Cart   `json:"items"`
	Subtotal        int           `json:"subtotal"`
	Delivery        int           `json:"delivery"`
	Total           int           `json:"total"`
	Prefill         Prefill       `json:"prefill"`
	LockedFields    []string      `json:"locked_fields"`
	MinDeliveryDate string        `json:"min_delivery_date"`
}

// CatalogPath is where a visitor with an empty cart is sent.
const CatalogPath = "/catalog"

// CheckoutService runs the checkout flow.
type CheckoutService struct {
	carts    repositories.CartRepository
	sessions repositories.SessionRepository
	orders   *OrderService
	validate *validator.Validate

	delay  time.Duration
	prefix string
	clock  func() time.Time
	sleep  func(time.Duration)

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// CheckoutOption customizes a CheckoutService.
type CheckoutOption func(*CheckoutService)

// WithProcessingDelay sets the simulated order processing time.
func WithProcessingDelay(d time.Duration) CheckoutOption {
	return func(s *CheckoutService) { s.delay = d }
}

// WithOrderNumberPrefix sets the prefix of generated order numbers.
func WithOrderNumberPrefix(prefix string) CheckoutOption {
	return func(s *CheckoutService) { s.prefix = prefix }
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) CheckoutOption {
	return func(s *CheckoutService) { s.clock = clock }
}

// WithSleep replaces time.Sleep for the processing delay.
func WithSleep(sleep func(time.Duration)) CheckoutOption {
	return func(s *CheckoutService) { s.sleep = sleep }
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(carts repositories.CartRepository, sessions repositories.SessionRepository, orders *OrderService, opts ...CheckoutOption) *CheckoutService {
	s := &CheckoutService{
		carts:    carts,
		sessions: sessions,
		orders:   orders,
		validate: newValidator(),
		delay:    2 * time.Second,
		prefix:   "EQ",
		clock:    time.Now,
		sleep:    time.Sleep,
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin enters the checkout page. An empty cart yields the redirect state;
// otherwise the view is blocked or editable depending on the session.
func (s *CheckoutService) Begin(ctx context.Context, visitorID string) *CheckoutView {
	items := s.checkoutItems(ctx, visitorID)
	session := s.sessions.Current(ctx, visitorID)

	view := &CheckoutView{
		State: NextCheckoutState(StateNone, EventEnter, CheckoutSnapshot{
			CartEmpty:     len(items) == 0,
			Authenticated: session != nil,
		}),
		Items:           items,
		LockedFields:    []string{},
		MinDeliveryDate: MinDeliveryDate(s.clock()),
	}
	if view.State == StateRedirect {
		view.Redirect = CatalogPath
		return view
	}

	view.Subtotal = items.TotalPrice()
	view.Total = view.Subtotal + view.Delivery
	if session != nil {
		view.Prefill, view.LockedFields = prefillFrom(*session)
	}
	return view
}

// Submit validates the form and places the order. The visitor must have a
// non-empty cart and a session. While one submission of a visitor is being
// processed, further submissions are refused.
func (s *CheckoutService) Submit(ctx context.Context, visitorID string, form CheckoutForm) (*models.Order, error) {
	items := s.checkoutItems(ctx, visitorID)
	session := s.sessions.Current(ctx, visitorID)

	state := NextCheckoutState(StateNone, EventEnter, CheckoutSnapshot{
		CartEmpty:     len(items) == 0,
		Authenticated: session != nil,
	})
	switch state {
	case StateRedirect:
		return nil, ErrCartEmpty
	case StateBlocked:
		return nil, &AuthError{Field: "form", Err: ErrAuthRequired}
	}

	if !s.acquire(visitorID) {
		return nil, ErrSubmissionInProgress
	}
	defer s.release(visitorID)

	form = applySession(form, *session)
	submittedAt := s.clock()
	if err := s.validateForm(form, MinDeliveryDate(submittedAt)); err != nil {
		return nil, err
	}

	// simulated processing; not cancellable
	s.sleep(s.delay)

	order := models.Order{
		Customer: models.Customer{Name: form.Name, Phone: form.Phone, Email: form.Email},
		Delivery: models.Delivery{
			Address: form.Address,
			Date:    form.DeliveryDate,
			Time:    form.DeliveryTime,
			Notes:   form.Notes,
		},
		Payment:     models.Payment{Method: form.PaymentMethod},
		Items:       items.Clone(),
		Timestamp:   submittedAt.UTC(),
		OrderNumber: OrderNumber(s.prefix, s.clock()),
		Status:      models.OrderStatusPending,
	}
	if err := s.orders.PlaceOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.ClearStaged(ctx, visitorID); err != nil {
		log.Printf("Error clearing staged cart after order %s: %v", order.OrderNumber, err)
	}
	s.removeOrdered(ctx, visitorID, order)

	log.Printf("Checkout %s -> %s for order %s", state, NextCheckoutState(state, EventSubmitted, CheckoutSnapshot{}), order.OrderNumber)
	return &order, nil
}

// ValidateCheckoutForm checks the required fields, the display phone format
// and that the delivery date is not before minDate (YYYY-MM-DD).
func ValidateCheckoutForm(form CheckoutForm, minDate string) error {
	return validateCheckoutForm(newValidator(), form, minDate)
}

func (s *CheckoutService) validateForm(form CheckoutForm, minDate string) error {
	return validateCheckoutForm(s.validate, form, minDate)
}

func validateCheckoutForm(v *validator.Validate, form CheckoutForm, minDate string) error {
	verr := checkStruct(v, form)
	if _, bad := verr.Fields["deliveryDate"]; !bad {
		date, err := time.Parse(dateLayout, form.DeliveryDate)
		switch {
		case err != nil:
			verr.Add("deliveryDate", "Enter a valid date")
		case minDate != "":
			if earliest, err := time.Parse(dateLayout, minDate); err == nil && date.Before(earliest) {
				verr.Add("deliveryDate", fmt.Sprintf("Delivery date cannot be earlier than %s", minDate))
			}
		}
	}
	return verr.OrNil()
}

// MinDeliveryDate is the first deliverable day: the day after now, in UTC.
func MinDeliveryDate(now time.Time) string {
	return now.UTC().AddDate(0, 0, 1).Format(dateLayout)
}

// OrderNumber is prefix followed by the last 6 digits of t in epoch
// milliseconds. Two orders within the same millisecond, or exactly 10^6 ms
// apart, get the same number.
func OrderNumber(prefix string, t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return prefix + ms
}

// removeOrdered takes the ordered quantities out of the live cart. Lines
// added while the order was processing stay in the cart.
func (s *CheckoutService) removeOrdered(ctx context.Context, visitorID string, order models.Order) {
	rest := s.carts.Load(ctx, visitorID).Subtract(order.Items)
	var err error
	if len(rest) == 0 {
		err = s.carts.Clear(ctx, visitorID)
	} else {
		err = s.carts.Save(ctx, visitorID, rest)
	}
	if err != nil {
		log.Printf("Error clearing cart after order %s: %v", order.OrderNumber, err)
	}
}

// checkoutItems prefers the cart staged for checkout and falls back to the live cart.
func (s *CheckoutService) checkoutItems(ctx context.Context, visitorID string) models.Cart {
	if staged := s.carts.LoadStaged(ctx, visitorID); len(staged) > 0 {
		return staged
	}
	return s.carts.Load(ctx, visitorID)
}

func (s *CheckoutService) acquire(visitorID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[visitorID]; busy {
		return false
	}
	s.inFlight[visitorID] = struct{}{}
	return true
}

func (s *CheckoutService) release(visitorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, visitorID)
}

func prefillFrom(session models.Session) (Prefill, []string) {
	var p Prefill
	locked := []string{}
	if session.Name != "" {
		p.Name = session.Name
		locked = append(locked, "name")
	}
	if session.Email != "" {
		p.Email = session.Email
		locked = append(locked, "email")
	}
	if session.Phone != "" {
		p.Phone = FormatPhone(session.Phone)
		locked = append(locked, "phone")
	}
	return p, locked
}

// applySession overwrites the locked fields with the session's values.
func applySession(form CheckoutForm, session models.Session) CheckoutForm {
	p, _ := prefillFrom(session)
	if p.Name != "" {
		form.Name = p.Name
	}
	if p.Email != "" {
		form.Email = p.Email
	}
	if p.Phone != "" {
		form.Phone = p.Phone
	}
	return form
}
