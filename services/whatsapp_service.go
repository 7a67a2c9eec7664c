package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appConfig "github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/models"
)

// WhatsAppStatus is the connection state of a company's WhatsApp instance.
type WhatsAppStatus struct {
	Connected bool   `json:"connected"`
	Instance  string `json:"instance"`
	State     string `json:"state"`
}

// WhatsAppService talks to the WhatsApp gateway (Evolution API). One
// instance per company, named after its subdomain.
type WhatsAppService interface {
	// Status returns the connection state of the company's instance
	Status(company *models.Company) (*WhatsAppStatus, error)

	// SendMessage sends a text message to a phone number through the
	// company's instance
	SendMessage(company *models.Company, phone, message string) error
}

// EvolutionService implements WhatsAppService against an Evolution API
// deployment
type EvolutionService struct {
	client *http.Client
}

var whatsAppServiceInstance WhatsAppService

// InitWhatsAppService initializes the WhatsApp service
func InitWhatsAppService() WhatsAppService {
	whatsAppServiceInstance = &EvolutionService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
	return whatsAppServiceInstance
}

// GetWhatsAppService returns the initialized WhatsApp service instance
func GetWhatsAppService() WhatsAppService {
	return whatsAppServiceInstance
}

// SetWhatsAppService sets the WhatsApp service instance (primarily for testing)
func SetWhatsAppService(service WhatsAppService) {
	whatsAppServiceInstance = service
}

// apiBase returns the Evolution API base URL and key for a company. The
// company's own credentials win over the global configuration.
func apiBase(company *models.Company) (string, string, error) {
	url := company.EvolutionAPIURL
	key := company.EvolutionAPIKey
	if cfg := appConfig.GetConfig(); cfg != nil {
		if url == "" {
			url = cfg.EvolutionAPIURL
		}
		if key == "" {
			key = cfg.EvolutionAPIKey
		}
	}
	if url == "" {
		return "", "", fmt.Errorf("whatsapp integration is not configured")
	}
	return url, key, nil
}

// Status queries the connection state of the company's instance
func (s *EvolutionService) Status(company *models.Company) (*WhatsAppStatus, error) {
	base, key, err := apiBase(company)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/instance/connectionState/%s", base, company.Subdomain)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", key)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	var body struct {
		Instance struct {
			State string `json:"state"`
		} `json:"instance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &WhatsAppStatus{
		Connected: body.Instance.State == "open",
		Instance:  company.Subdomain,
		State:     body.Instance.State,
	}, nil
}

// SendMessage sends a text message through the company's instance
func (s *EvolutionService) SendMessage(company *models.Company, phone, message string) error {
	base, key, err := apiBase(company)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"number": phone,
		"text":   message,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/message/sendText/%s", base, company.Subdomain)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", key)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
