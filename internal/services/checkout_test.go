package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickethub/internal/models"
	"tickethub/internal/repositories"
)

// memCheckoutStore is an in-memory checkout store with the same contract as
// the SQL-backed one: all-or-nothing, compare-and-decrement availability,
// bounded code retry against the ledger.
type memCheckoutStore struct {
	mu     sync.Mutex
	carts  map[int][]*models.CartLine
	events map[int]*models.Event
	codes  map[string]bool

	tickets []*models.Ticket
	nextID  int
}

func newMemCheckoutStore() *memCheckoutStore {
	return &memCheckoutStore{
		carts:  make(map[int][]*models.CartLine),
		events: make(map[int]*models.Event),
		codes:  make(map[string]bool),
	}
}

func (s *memCheckoutStore) Checkout(userID int, gen models.CodeGenerator) (*repositories.CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	// Validate every line before issuing anything
	for _, line := range lines {
		event, ok := s.events[line.EventID]
		if !ok {
			return nil, models.ErrEventNotFound
		}
		if event.AvailableTickets < line.Quantity {
			return nil, models.ErrInsufficientInventory
		}
	}

	result := &repositories.CheckoutResult{}
	pending := make(map[string]bool)

	for _, line := range lines {
		code, err := s.uniqueCode(gen, pending)
		if err != nil {
			return nil, err
		}
		pending[code] = true

		s.nextID++
		result.Tickets = append(result.Tickets, &models.Ticket{
			ID:           s.nextID,
			EventID:      line.EventID,
			UserID:       userID,
			TicketCode:   code,
			Status:       models.TicketActive,
			Quantity:     line.Quantity,
			PurchaseDate: time.Now(),
		})
		result.TotalAmount += line.Price
	}

	// Commit
	for code := range pending {
		s.codes[code] = true
	}
	s.tickets = append(s.tickets, result.Tickets...)
	for _, line := range lines {
		s.events[line.EventID].AvailableTickets -= line.Quantity
	}
	delete(s.carts, userID)

	return result, nil
}

func (s *memCheckoutStore) uniqueCode(gen models.CodeGenerator, pending map[string]bool) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := gen()
		if err != nil {
			return "", err
		}
		if !s.codes[code] && !pending[code] {
			return code, nil
		}
	}
	return "", models.ErrCodeGenerationExhausted
}

func (s *memCheckoutStore) addEvent(id, available, price int) {
	s.events[id] = &models.Event{
		ID:               id,
		Price:            price,
		Capacity:         available,
		AvailableTickets: available,
	}
}

func (s *memCheckoutStore) addLine(userID, eventID, quantity, price int) {
	s.carts[userID] = append(s.carts[userID], &models.CartLine{
		ID:       len(s.carts[userID]) + 1,
		UserID:   userID,
		EventID:  eventID,
		Quantity: quantity,
		Price:    price,
	})
}

func TestCheckoutService_Checkout(t *testing.T) {
	store := newMemCheckoutStore()
	store.addEvent(1, 5, 100)
	store.addLine(7, 1, 2, 200)

	service := NewCheckoutService(store)

	receipt, err := service.Checkout(7)
	require.NoError(t, err)

	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, 7, receipt.UserID)
	assert.Len(t, receipt.TicketCodes, 1)
	assert.Equal(t, 200, receipt.TotalAmount)
	assert.False(t, receipt.IssuedAt.IsZero())

	// Availability dropped by the line quantity and the cart is empty
	assert.Equal(t, 3, store.events[1].AvailableTickets)
	assert.Empty(t, store.carts[7])

	require.Len(t, store.tickets, 1)
	ticket := store.tickets[0]
	assert.Equal(t, models.TicketActive, ticket.Status)
	assert.Equal(t, 2, ticket.Quantity)
	assert.Equal(t, receipt.TicketCodes[0], ticket.TicketCode)
}

func TestCheckoutService_Checkout_InsufficientInventory(t *testing.T) {
	store := newMemCheckoutStore()
	store.addEvent(1, 1, 100)
	store.addLine(7, 1, 3, 300)

	service := NewCheckoutService(store)

	receipt, err := service.Checkout(7)
	assert.ErrorIs(t, err, models.ErrInsufficientInventory)
	assert.Nil(t, receipt)

	// Nothing changed: availability, ledger and cart are untouched
	assert.Equal(t, 1, store.events[1].AvailableTickets)
	assert.Empty(t, store.tickets)
	assert.Len(t, store.carts[7], 1)
}

func TestCheckoutService_Checkout_AllOrNothing(t *testing.T) {
	store := newMemCheckoutStore()
	store.addEvent(1, 10, 100) // plenty available
	store.addEvent(2, 0, 100)  // sold out
	store.addLine(7, 1, 1, 100)
	store.addLine(7, 2, 1, 100)

	service := NewCheckoutService(store)

	_, err := service.Checkout(7)
	assert.ErrorIs(t, err, models.ErrInsufficientInventory)

	// No ticket was issued for the available event either
	assert.Empty(t, store.tickets)
	assert.Equal(t, 10, store.events[1].AvailableTickets)
	assert.Len(t, store.carts[7], 2)
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	service := NewCheckoutService(newMemCheckoutStore())

	_, err := service.Checkout(7)
	assert.ErrorIs(t, err, models.ErrEmptyCart)
}

func TestCheckoutService_Checkout_ConcurrentLastUnit(t *testing.T) {
	store := newMemCheckoutStore()
	store.addEvent(1, 1, 100)
	store.addLine(10, 1, 1, 100)
	store.addLine(20, 1, 1, 100)

	service := NewCheckoutService(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, userID := range []int{10, 20} {
		wg.Add(1)
		go func(i, userID int) {
			defer wg.Done()
			_, errs[i] = service.Checkout(userID)
		}(i, userID)
	}
	wg.Wait()

	var successes, shortfalls int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, models.ErrInsufficientInventory):
			shortfalls++
		}
	}

	assert.Equal(t, 1, successes, "exactly one checkout should win the last unit")
	assert.Equal(t, 1, shortfalls)
	assert.Equal(t, 0, store.events[1].AvailableTickets)
	assert.Len(t, store.tickets, 1)
}

func TestCheckoutService_Checkout_CodeCollisionRetry(t *testing.T) {
	store := newMemCheckoutStore()
	store.addEvent(1, 5, 100)
	store.addLine(7, 1, 1, 100)
	store.codes["TKT-taken"] = true

	attempts := []string{"TKT-taken", "TKT-fresh"}
	var calls int
	gen := func() (string, error) {
		code := attempts[calls]
		calls++
		return code, nil
	}

	service := NewCheckoutServiceWithGenerator(store, gen)

	receipt, err := service.Checkout(7)
	require.NoError(t, err)
	assert.Equal(t, []string{"TKT-fresh"}, receipt.TicketCodes)
	assert.Equal(t, 2, calls)
}

func TestCheckoutService_Checkout_CodeGenerationExhausted(t *testing.T) {
	store := newMemCheckoutStore()
	store.addEvent(1, 5, 100)
	store.addLine(7, 1, 1, 100)
	store.codes["TKT-taken"] = true

	gen := func() (string, error) { return "TKT-taken", nil }

	service := NewCheckoutServiceWithGenerator(store, gen)

	_, err := service.Checkout(7)
	assert.ErrorIs(t, err, models.ErrCodeGenerationExhausted)

	// Exhaustion aborts the whole checkout
	assert.Empty(t, store.tickets)
	assert.Equal(t, 5, store.events[1].AvailableTickets)
	assert.Len(t, store.carts[7], 1)
}

func TestCheckoutService_Checkout_ReceiptCodesInCartOrder(t *testing.T) {
	store := newMemCheckoutStore()
	store.addEvent(1, 5, 100)
	store.addEvent(2, 5, 150)
	store.addEvent(3, 5, 50)
	store.addLine(7, 2, 1, 150)
	store.addLine(7, 1, 2, 200)
	store.addLine(7, 3, 1, 50)

	var seq int
	gen := func() (string, error) {
		seq++
		return fmt.Sprintf("TKT-%03d", seq), nil
	}

	service := NewCheckoutServiceWithGenerator(store, gen)

	receipt, err := service.Checkout(7)
	require.NoError(t, err)

	assert.Equal(t, []string{"TKT-001", "TKT-002", "TKT-003"}, receipt.TicketCodes)
	assert.Equal(t, 400, receipt.TotalAmount)
}
