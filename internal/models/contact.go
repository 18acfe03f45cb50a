// internal/models/contact.go
package models

// ContactInfo holds the details the salesperson enters (or copies from the
// briefing) before reaching out.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Language string `json:"language,omitempty"`
}

// ClientRecord identifies the prospective client the contact belongs to.
type ClientRecord struct {
	ClientName   string `json:"clientName"`
	InternalCode string `json:"internalCode,omitempty"`
}

type ContactChannel string

const (
	ChannelEmail    ContactChannel = "email"
	ChannelTeams    ContactChannel = "teams"
	ChannelWhatsApp ContactChannel = "whatsapp"
	ChannelCalendar ContactChannel = "calendar"
	ChannelShare    ContactChannel = "share"
)

// ContactLink is one deep link. A disabled link carries the reason and no URL.
type ContactLink struct {
	URL     string `json:"url,omitempty"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

type ContactLinks struct {
	Email    ContactLink `json:"email"`
	Teams    ContactLink `json:"teams"`
	WhatsApp ContactLink `json:"whatsapp"`
	Calendar ContactLink `json:"calendar"`
	Share    ContactLink `json:"share"`
}

type ChannelLink struct {
	Channel ContactChannel `json:"channel"`
	ContactLink
}

// ByChannel lists the links in display order.
func (l ContactLinks) ByChannel() []ChannelLink {
	return []ChannelLink{
		{ChannelEmail, l.Email},
		{ChannelTeams, l.Teams},
		{ChannelWhatsApp, l.WhatsApp},
		{ChannelCalendar, l.Calendar},
		{ChannelShare, l.Share},
	}
}
