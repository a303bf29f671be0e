package services

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"tickethub/internal/models"
)

// TicketService renders issued tickets for their owner, including the
// QR-encodable scan URL
type TicketService struct {
	ticketRepo  TicketRepository
	scanBaseURL string
}

// NewTicketService creates a new ticket service. scanBaseURL is the prefix
// of the URL encoded into each ticket's QR image.
func NewTicketService(ticketRepo TicketRepository, scanBaseURL string) *TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		scanBaseURL: strings.TrimSuffix(scanBaseURL, "/"),
	}
}

// TicketWithQR is a ticket joined with its event plus the rendered QR image
type TicketWithQR struct {
	*models.TicketWithEvent
	ScanURL   string `json:"scan_url"`
	QRDataURL string `json:"qr_data_url"`
}

// MyTickets returns the user's tickets with event details and a QR code data
// URL per ticket, newest first
func (s *TicketService) MyTickets(userID int) ([]*TicketWithQR, error) {
	tickets, err := s.ticketRepo.FindByUserWithEvents(userID)
	if err != nil {
		return nil, err
	}

	result := make([]*TicketWithQR, 0, len(tickets))
	for _, ticket := range tickets {
		scanURL := s.ScanURL(ticket.TicketCode)

		qrDataURL, err := encodeQRDataURL(scanURL)
		if err != nil {
			return nil, fmt.Errorf("failed to render QR code for ticket %s: %w", ticket.TicketCode, err)
		}

		result = append(result, &TicketWithQR{
			TicketWithEvent: ticket,
			ScanURL:         scanURL,
			QRDataURL:       qrDataURL,
		})
	}

	return result, nil
}

// History returns the user's tickets ordered by purchase date descending
func (s *TicketService) History(userID int) ([]*models.Ticket, error) {
	return s.ticketRepo.FindByUser(userID)
}

// EventTickets returns the tickets issued for an event, newest first
func (s *TicketService) EventTickets(eventID int) ([]*models.Ticket, error) {
	return s.ticketRepo.FindByEvent(eventID)
}

// Scan looks up a ticket by code. This backs the placeholder scan endpoint;
// it reports status without transitioning it.
func (s *TicketService) Scan(code string) (*models.Ticket, error) {
	return s.ticketRepo.GetByCode(code)
}

// ScanURL builds the QR-encodable URL for a ticket code
func (s *TicketService) ScanURL(code string) string {
	return s.scanBaseURL + "/" + code
}

func encodeQRDataURL(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, 200)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
