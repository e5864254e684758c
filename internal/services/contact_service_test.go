package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"equaline/internal/repositories"
	"equaline/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContactService(publisher services.EventPublisher) (*services.ContactService, *repositories.BlobContactRepository) {
	contacts := repositories.NewBlobContactRepository(repositories.NewBlobStore(repositories.NewMemoryStore()))
	service := services.NewContactService(contacts, publisher,
		services.WithContactClock(func() time.Time { return fixedNow }))
	return service, contacts
}

func TestContactService_RequestCallback(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", "equaline.events", services.EventCallbackRequested, mock.Anything).Return(nil).Once()
	service, contacts := newContactService(publisher)

	callback, err := service.RequestCallback(ctx, services.CallbackRequest{
		Name:    " Борис ",
		Phone:   " 8 912 345 67 89 ",
		Message: "Перезвоните после обеда",
	})
	require.NoError(t, err)
	assert.Equal(t, "Борис", callback.Name)
	assert.Equal(t, "8 912 345 67 89", callback.Phone, "phone is stored as entered")
	assert.Equal(t, fixedNow.UnixMilli(), callback.ID)

	stored := contacts.GetCallbacks(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, *callback, stored[0])
	publisher.AssertExpectations(t)
}

func TestContactService_RequestCallbackValidation(t *testing.T) {
	ctx := context.Background()
	service, contacts := newContactService(nil)

	_, err := service.RequestCallback(ctx, services.CallbackRequest{Name: "Б", Phone: "123", Email: "nope"})
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "phone")
	assert.Contains(t, verr.Fields, "email")
	assert.Empty(t, contacts.GetCallbacks(ctx))

	_, err = service.RequestCallback(ctx, services.CallbackRequest{Name: "Борис", Phone: "9123456789"})
	assert.NoError(t, err, "email and message are optional")
}

func TestContactService_SendMessage(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", "equaline.events", services.EventContactMessage, mock.Anything).Return(nil).Once()
	service, contacts := newContactService(publisher)

	msg, err := service.SendMessage(ctx, services.ContactMessage{
		Name:    " Вера ",
		Phone:   "+7 (912) 345-67-89",
		Message: "  Нужна доставка в офис  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Вера", msg.Name)
	assert.Equal(t, "Нужна доставка в офис", msg.Message)
	assert.Empty(t, contacts.GetCallbacks(ctx), "messages are not stored")
	publisher.AssertExpectations(t)
}

func TestContactService_SendMessageValidation(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockEventPublisher)
	service, _ := newContactService(publisher)

	_, err := service.SendMessage(ctx, services.ContactMessage{
		Name:    "В",
		Phone:   "89123456789",
		Email:   "nope",
		Message: " коротко   ",
	})
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"name", "phone", "email", "message"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Equal(t, "Message must be at least 10 characters", verr.Fields["message"])
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactService_SubscribeUnreadableList(t *testing.T) {
	ctx := context.Background()
	kv := repositories.NewMemoryStore()
	raw := []byte(`[{"email":"anna@example.com","timestamp":"2026-03-01T00:00:00Z","id":1},{"id":2}]`)
	require.NoError(t, kv.Set(ctx, repositories.KeyNewsletter, raw))
	contacts := repositories.NewBlobContactRepository(repositories.NewBlobStore(kv))
	service := services.NewContactService(contacts, nil)

	_, err := service.Subscribe(ctx, "boris@example.com")
	assert.ErrorIs(t, err, repositories.ErrMalformed)

	stored, err := kv.Get(ctx, repositories.KeyNewsletter)
	require.NoError(t, err)
	assert.Equal(t, raw, stored)
}

func TestContactService_Subscribe(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", "equaline.events", services.EventNewsletterSubscribed, mock.Anything).Return(nil).Once()
	service, contacts := newContactService(publisher)

	sub, err := service.Subscribe(ctx, " anna@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", sub.Email)

	_, err = service.Subscribe(ctx, "anna@example.com")
	assert.ErrorIs(t, err, services.ErrAlreadySubscribed)

	_, err = service.Subscribe(ctx, "not-an-email")
	var verr *services.ValidationError
	assert.True(t, errors.As(err, &verr))

	assert.Len(t, contacts.GetSubscriptions(ctx), 1)
	publisher.AssertExpectations(t)
}
