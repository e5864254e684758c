package models_test

import (
	"testing"

	"equaline/internal/models"

	"github.com/stretchr/testify/assert"
)

var (
	glacier = models.Product{ID: 1, Name: "Glacier", Price: 89, Volume: "0.5 л", Category: "premium"}
	mineral = models.Product{ID: 3, Name: "Mineral", Price: 199, Volume: "1.5 л", Category: "classic"}
)

func TestCart_AddCountsCalls(t *testing.T) {
	for calls := 1; calls <= 5; calls++ {
		var cart models.Cart
		for i := 0; i < calls; i++ {
			cart = cart.Add(glacier)
		}
		assert.Len(t, cart, 1)
		assert.Equal(t, calls, cart[0].Quantity)
		assert.Equal(t, calls, cart.TotalItemCount())
	}
}

func TestCart_Totals(t *testing.T) {
	var cart models.Cart
	cart = cart.Add(glacier)
	cart = cart.Add(glacier)
	cart = cart.Add(mineral)

	assert.Equal(t, 3, cart.TotalItemCount())
	assert.Equal(t, 377, cart.TotalPrice())
	assert.Equal(t, []int{1, 3}, []int{cart[0].ProductID, cart[1].ProductID})
}

func TestCart_SnapshotIsNotRefreshed(t *testing.T) {
	var cart models.Cart
	cart = cart.Add(glacier)

	repriced := glacier
	repriced.Price = 1000
	repriced.Name = "Renamed"
	cart = cart.Add(repriced)

	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, 89, cart[0].Price)
	assert.Equal(t, "Glacier", cart[0].Name)
}

func TestCart_SetQuantityZeroEqualsRemove(t *testing.T) {
	build := func() models.Cart {
		var c models.Cart
		c = c.Add(glacier)
		c = c.Add(mineral)
		c = c.Add(mineral)
		return c
	}

	removed := build().Remove(mineral.ID)
	zeroed, changed := build().SetQuantity(mineral.ID, 0)
	negative, _ := build().SetQuantity(mineral.ID, -3)

	assert.True(t, changed)
	assert.Equal(t, removed, zeroed)
	assert.Equal(t, removed, negative)
	assert.Len(t, removed, 1)
}

func TestCart_SetQuantity(t *testing.T) {
	var cart models.Cart
	cart = cart.Add(glacier)

	cart, changed := cart.SetQuantity(glacier.ID, 250)
	assert.True(t, changed)
	assert.Equal(t, 250, cart[0].Quantity)

	cart, changed = cart.SetQuantity(99, 4)
	assert.False(t, changed)
	assert.Len(t, cart, 1)
}

func TestCart_RemoveMissingIsNoop(t *testing.T) {
	var cart models.Cart
	cart = cart.Add(glacier)
	cart = cart.Remove(42)
	assert.Len(t, cart, 1)
}

func TestCart_Clone(t *testing.T) {
	var cart models.Cart
	cart = cart.Add(glacier)

	clone := cart.Clone()
	clone[0].Quantity = 7
	assert.Equal(t, 1, cart[0].Quantity)

	assert.NotNil(t, models.Cart(nil).Clone())
}

func TestCart_Subtract(t *testing.T) {
	cart := models.Cart{
		{ProductID: 1, Price: 89, Quantity: 3},
		{ProductID: 3, Price: 199, Quantity: 1},
		{ProductID: 7, Price: 299, Quantity: 2},
	}
	taken := models.Cart{
		{ProductID: 1, Price: 89, Quantity: 2},
		{ProductID: 3, Price: 199, Quantity: 1},
		{ProductID: 5, Price: 179, Quantity: 4},
	}

	rest := cart.Subtract(taken)
	assert.Equal(t, models.Cart{
		{ProductID: 1, Price: 89, Quantity: 1},
		{ProductID: 7, Price: 299, Quantity: 2},
	}, rest)
	assert.Equal(t, 3, cart[0].Quantity, "receiver is not modified")

	assert.Empty(t, cart.Subtract(cart))
	assert.NotNil(t, models.Cart(nil).Subtract(taken))
}

func TestOrder_Total(t *testing.T) {
	order := models.Order{Items: models.Cart{
		{ProductID: 1, Price: 89, Quantity: 2},
		{ProductID: 3, Price: 199, Quantity: 1},
	}}
	assert.Equal(t, 377, order.Total())
}
