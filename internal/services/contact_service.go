package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"equaline/internal/models"
	"equaline/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CallbackRequest is the "call me back" form.
type CallbackRequest struct {
	Name    string `json:"name" validate:"person_name"`
	Phone   string `json:"phone" validate:"phone_digits"`
	Email   string `json:"email" validate:"omitempty,site_email"`
	Message string `json:"message"`
}

// ContactMessage is the contact page form. Nothing is stored; the message
// is only published.
type ContactMessage struct {
	Name    string `json:"name" validate:"person_name"`
	Phone   string `json:"phone" validate:"notblank,display_phone"`
	Email   string `json:"email" validate:"omitempty,site_email"`
	Message string `json:"message" validate:"long_message"`
}

// SubscribeRequest is the newsletter form.
type SubscribeRequest struct {
	Email string `json:"email" validate:"site_email"`
}

// ContactService handles callback requests, contact messages and newsletter sign-ups.
type ContactService struct {
	contacts  repositories.ContactRepository
	publisher EventPublisher
	validate  *validator.Validate
	clock     func() time.Time
	mu        sync.Mutex
}

// ContactOption customizes a ContactService.
type ContactOption func(*ContactService)

// WithContactClock replaces time.Now for timestamps and ids.
func WithContactClock(clock func() time.Time) ContactOption {
	return func(s *ContactService) { s.clock = clock }
}

// NewContactService creates a new ContactService. publisher may be nil.
func NewContactService(contacts repositories.ContactRepository, publisher EventPublisher, opts ...ContactOption) *ContactService {
	s := &ContactService{
		contacts:  contacts,
		publisher: publisher,
		validate:  newValidator(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestCallback records a callback request. The phone is kept as entered.
func (s *ContactService) RequestCallback(ctx context.Context, req CallbackRequest) (*models.Callback, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)

	if err := checkStruct(s.validate, req).OrNil(); err != nil {
		return nil, err
	}

	now := s.clock()
	callback := models.Callback{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Message:   strings.TrimSpace(req.Message),
		Timestamp: now.UTC(),
		ID:        now.UnixMilli(),
	}
	if err := s.contacts.AppendCallback(ctx, callback); err != nil {
		return nil, fmt.Errorf("failed to save callback request: %w", err)
	}
	log.Printf("Callback requested by %s", callback.Phone)

	publishEvent(s.publisher, EventCallbackRequested, callback)
	return &callback, nil
}

// SendMessage validates a contact page message and publishes it.
func (s *ContactService) SendMessage(ctx context.Context, msg ContactMessage) (*ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Phone = strings.TrimSpace(msg.Phone)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := checkStruct(s.validate, msg).OrNil(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Printf("Contact message from %s", msg.Phone)
	publishEvent(s.publisher, EventContactMessage, msg)
	return &msg, nil
}

// Subscribe adds email to the newsletter list. Emails are compared exactly.
func (s *ContactService) Subscribe(ctx context.Context, email string) (*models.Subscription, error) {
	req := SubscribeRequest{Email: strings.TrimSpace(email)}
	if err := checkStruct(s.validate, req).OrNil(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.contacts.LoadSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	for _, sub := range subs {
		if sub.Email == req.Email {
			return nil, ErrAlreadySubscribed
		}
	}

	now := s.clock()
	sub := models.Subscription{Email: req.Email, Timestamp: now.UTC(), ID: now.UnixMilli()}
	if err := s.contacts.SaveSubscriptions(ctx, append(subs, sub)); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	publishEvent(s.publisher, EventNewsletterSubscribed, sub)
	return &sub, nil
}
