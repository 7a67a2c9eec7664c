package services

import (
	"sync"

	"github.com/comandaviva/comanda-api/models"
)

// SentMessage is a message captured by the mock WhatsApp service
type SentMessage struct {
	Instance string
	Phone    string
	Message  string
}

// MockWhatsAppService is a mock implementation of WhatsAppService for testing
type MockWhatsAppService struct {
	Connected bool
	SendErr   error
	sent      []SentMessage
	mu        sync.Mutex
}

// NewMockWhatsAppService creates a new mock WhatsApp service
func NewMockWhatsAppService() *MockWhatsAppService {
	return &MockWhatsAppService{Connected: true}
}

// SetAsMockForTesting sets this mock as the global WhatsApp service instance for testing
func (m *MockWhatsAppService) SetAsMockForTesting() {
	SetWhatsAppService(m)
}

// Status reports the configured connection state
func (m *MockWhatsAppService) Status(company *models.Company) (*WhatsAppStatus, error) {
	state := "close"
	if m.Connected {
		state = "open"
	}
	return &WhatsAppStatus{
		Connected: m.Connected,
		Instance:  company.Subdomain,
		State:     state,
	}, nil
}

// SendMessage captures the message for later assertions
func (m *MockWhatsAppService) SendMessage(company *models.Company, phone, message string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	m.sent = append(m.sent, SentMessage{
		Instance: company.Subdomain,
		Phone:    phone,
		Message:  message,
	})
	m.mu.Unlock()
	return nil
}

// SentMessages returns the messages captured so far
func (m *MockWhatsAppService) SentMessages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
