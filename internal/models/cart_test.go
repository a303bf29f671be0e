package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartRequest_Validate(t *testing.T) {
	req := &AddToCartRequest{Quantity: 0}
	require.NoError(t, req.Validate())
	assert.Equal(t, 1, req.Quantity, "zero quantity defaults to 1")

	assert.NoError(t, (&AddToCartRequest{Quantity: 100}).Validate())
	assert.ErrorIs(t, (&AddToCartRequest{Quantity: -1}).Validate(), ErrInvalidInput)
	assert.ErrorIs(t, (&AddToCartRequest{Quantity: 101}).Validate(), ErrInvalidInput)
}

func TestNewCartView(t *testing.T) {
	items := []*CartItem{
		{CartLine: CartLine{ID: 1, Price: 200, Quantity: 2}, EventTitle: "Concert"},
		{CartLine: CartLine{ID: 2, Price: 250, Quantity: 1}, EventTitle: "Workshop"},
	}

	view := NewCartView(items)

	assert.Equal(t, 2, view.TotalItems, "counts lines, not tickets")
	assert.Equal(t, 450, view.TotalPrice, "sums the snapshotted line prices")
}

func TestNewCartView_Empty(t *testing.T) {
	view := NewCartView(nil)

	assert.NotNil(t, view.Items, "empty cart serializes as [] rather than null")
	assert.Equal(t, 0, view.TotalItems)
	assert.Equal(t, 0, view.TotalPrice)
}
