package services

import (
	"time"

	"github.com/google/uuid"

	"tickethub/internal/models"
)

// CheckoutService converts a user's cart into issued tickets. The all-or-
// nothing semantics live in the checkout store's transaction; the service
// supplies the code generator and shapes the receipt.
type CheckoutService struct {
	store   CheckoutStore
	codeGen models.CodeGenerator
}

// NewCheckoutService creates a new checkout service using the default ticket
// code generator
func NewCheckoutService(store CheckoutStore) *CheckoutService {
	return &CheckoutService{store: store, codeGen: models.GenerateTicketCode}
}

// NewCheckoutServiceWithGenerator creates a checkout service with a custom
// code generator
func NewCheckoutServiceWithGenerator(store CheckoutStore, gen models.CodeGenerator) *CheckoutService {
	return &CheckoutService{store: store, codeGen: gen}
}

// Checkout converts the user's cart into tickets and returns a receipt
// enumerating the issued codes in cart order. On any error no tickets are
// issued, no counters change and the cart is left intact.
func (s *CheckoutService) Checkout(userID int) (*models.Receipt, error) {
	result, err := s.store.Checkout(userID, s.codeGen)
	if err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		ID:          uuid.NewString(),
		UserID:      userID,
		TotalAmount: result.TotalAmount,
		IssuedAt:    time.Now(),
	}

	for _, ticket := range result.Tickets {
		receipt.TicketCodes = append(receipt.TicketCodes, ticket.TicketCode)
	}

	return receipt, nil
}
