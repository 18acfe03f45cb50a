package composelinks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/common/metrics"
	"sales-briefing/internal/common/validation"
	"sales-briefing/internal/models"
)

type LinkService interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config *Config
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger.WithFields(map[string]interface{}{"handler": "compose-links"}),
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	contact := Prefill(input.Contact, input.CRMData)
	links := s.Compose(contact, input.Client)

	for _, l := range links.ByChannel() {
		metrics.ContactLinksComposed.WithLabelValues(string(l.Channel), strconv.FormatBool(l.Enabled)).Inc()
	}

	s.logger.Info("Contact links composed", map[string]interface{}{
		"clientName": input.Client.ClientName,
		"email":      links.Email.Enabled,
		"teams":      links.Teams.Enabled,
		"whatsapp":   links.WhatsApp.Enabled,
	})

	return &Output{ContactLinks: links, Contact: contact}, nil
}

// Prefill copies the CRM contact details suggested by the briefing into the
// fields the salesperson left empty. Filled fields are never overwritten.
func Prefill(contact models.ContactInfo, crm *models.CRMData) models.ContactInfo {
	if crm == nil {
		return contact
	}
	if strings.TrimSpace(contact.Name) == "" {
		contact.Name = crm.ContactName
	}
	if strings.TrimSpace(contact.Email) == "" {
		contact.Email = crm.ContactEmail
	}
	if strings.TrimSpace(contact.Phone) == "" {
		contact.Phone = crm.ContactPhone
	}
	return contact
}

// Compose builds every outreach link. A link whose required fields are
// missing or malformed is disabled with a reason instead of failing.
func (s *Service) Compose(contact models.ContactInfo, client models.ClientRecord) models.ContactLinks {
	msgs, _ := templatesFor(contact.Language)

	name := strings.TrimSpace(contact.Name)
	clientName := strings.TrimSpace(client.ClientName)
	if clientName == "" {
		clientName = msgs.ClientFallback
	}
	text := func(format string) string {
		return fmt.Sprintf(format, name, clientName, s.config.Organization, s.config.SenderTeam)
	}

	return models.ContactLinks{
		Email:    s.emailLink(contact, text(msgs.EmailSubject), text(msgs.EmailBody)),
		Teams:    teamsLink(name, text(msgs.TeamsSubject), text(msgs.TeamsBody)),
		WhatsApp: whatsAppLink(name, contact.Phone, text(msgs.WhatsApp)),
		Calendar: enabled(fmt.Sprintf("https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&details=%s",
			encodeComponent(text(msgs.CalendarTitle)), encodeComponent(text(msgs.CalendarDetails)))),
		Share: enabled(s.shareURL(client.ClientName)),
	}
}

func (s *Service) emailLink(contact models.ContactInfo, subject, body string) models.ContactLink {
	email := strings.TrimSpace(contact.Email)
	switch {
	case email == "":
		return disabled("email address is required")
	case !validation.ValidateEmail(email):
		return disabled("email address is not valid")
	}
	return enabled(fmt.Sprintf("mailto:%s?subject=%s&body=%s", email, encodeComponent(subject), encodeComponent(body)))
}

func teamsLink(name, subject, body string) models.ContactLink {
	if name == "" {
		return disabled("contact name is required")
	}
	return enabled(fmt.Sprintf("https://teams.microsoft.com/l/meeting/new?subject=%s&content=%s",
		encodeComponent(subject), encodeComponent(body)))
}

func whatsAppLink(name, phone, message string) models.ContactLink {
	switch {
	case strings.TrimSpace(phone) == "":
		return disabled("phone number is required")
	case !validation.ValidatePhone(phone):
		return disabled("phone number must contain at least 7 digits")
	case name == "":
		return disabled("contact name is required")
	}
	return enabled(fmt.Sprintf("https://wa.me/%s?text=%s", validation.Digits(phone), encodeComponent(message)))
}

func (s *Service) shareURL(clientName string) string {
	return strings.TrimRight(s.config.ShareBaseURL, "/") + "/?client=" + encodeComponent(clientName)
}

// encodeComponent percent-encodes like a browser's encodeURIComponent for
// the characters that matter here: spaces become %20, not '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func enabled(u string) models.ContactLink {
	return models.ContactLink{URL: u, Enabled: true}
}

func disabled(reason string) models.ContactLink {
	return models.ContactLink{Enabled: false, Reason: reason}
}
