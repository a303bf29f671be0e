package services

import (
	"tickethub/internal/models"
	"tickethub/internal/repositories"
)

// Service interfaces consumed by the HTTP layer. Handlers depend on these so
// tests can substitute stubs.

// AuthServiceInterface exposes identity operations
type AuthServiceInterface interface {
	Signup(req *models.SignupRequest) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUser(id int) (*models.User, error)
	ChangePassword(userID int, req *models.PasswordChangeRequest) error
}

// CartServiceInterface exposes cart manager operations
type CartServiceInterface interface {
	AddToCart(userID, eventID, quantity int) (*models.CartLine, error)
	RemoveFromCart(userID, lineID int) (*models.CartView, error)
	ViewCart(userID int) (*models.CartView, error)
}

// CheckoutServiceInterface exposes the checkout engine
type CheckoutServiceInterface interface {
	Checkout(userID int) (*models.Receipt, error)
}

// EventServiceInterface exposes catalog operations
type EventServiceInterface interface {
	CreateEvent(organizer *models.User, req *models.EventCreateRequest) (*models.Event, error)
	GetEvent(id int) (*models.Event, error)
	ListEvents(query string) ([]*models.Event, error)
	MyEvents(organizer *models.User) ([]*models.Event, error)
	UpdateEvent(organizer *models.User, id int, req *models.EventUpdateRequest) (*models.Event, error)
	DeleteEvent(organizer *models.User, id int) error
	Dashboard(organizer *models.User) ([]*models.EventSales, error)
}

// TicketServiceInterface exposes issued-ticket views
type TicketServiceInterface interface {
	MyTickets(userID int) ([]*TicketWithQR, error)
	History(userID int) ([]*models.Ticket, error)
	EventTickets(eventID int) ([]*models.Ticket, error)
	Scan(code string) (*models.Ticket, error)
}

// Repository interfaces the services are built on

// UserRepository interface for identity data operations
type UserRepository interface {
	Create(email string, passwordHash string, role models.UserRole) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(id int, passwordHash string) error
	GetPurchasedTickets(userID int) ([]*models.Ticket, error)
}

// EventRepository interface for catalog data operations
type EventRepository interface {
	Create(organizerID int, req *models.EventCreateRequest) (*models.Event, error)
	GetByID(id int) (*models.Event, error)
	List(query string) ([]*models.Event, error)
	GetByOrganizer(organizerID int) ([]*models.Event, error)
	Update(id int, req *models.EventUpdateRequest) (*models.Event, error)
	Delete(id int) error
	DecrementAvailability(eventID, amount int) error
	IncrementAvailability(eventID, amount int) error
	GetSalesSummary(organizerID int) ([]*models.EventSales, error)
}

// CartRepository interface for cart data operations
type CartRepository interface {
	Add(userID, eventID, quantity, price int) (*models.CartLine, error)
	Remove(userID, lineID int) error
	GetByUser(userID int) ([]*models.CartLine, error)
	GetItemsByUser(userID int) ([]*models.CartItem, error)
	Clear(userID int) error
}

// TicketRepository interface for ledger operations
type TicketRepository interface {
	Insert(ticket *models.Ticket) (*models.Ticket, error)
	CodeExists(code string) (bool, error)
	GetByCode(code string) (*models.Ticket, error)
	FindByUser(userID int) ([]*models.Ticket, error)
	FindByEvent(eventID int) ([]*models.Ticket, error)
	FindByUserWithEvents(userID int) ([]*models.TicketWithEvent, error)
	CountSoldByEvent(eventID int) (int, error)
}

// CheckoutStore runs the transactional cart-to-tickets conversion
type CheckoutStore interface {
	Checkout(userID int, gen models.CodeGenerator) (*repositories.CheckoutResult, error)
}
