package domain

import (
	"strings"
	"time"
)

// ContactKind distinguishes delivery protocols for a subscriber contact.
type ContactKind string

const (
	ContactEmail ContactKind = "email"
	ContactPhone ContactKind = "phone"
)

// Protocol maps a contact kind to the gateway subscription protocol.
func (k ContactKind) Protocol() string {
	if k == ContactEmail {
		return "email"
	}
	return "sms"
}

// Subscriber is a registered contact bound to one tracked location.
// Subscribers are created by registration and deleted by unsubscription,
// never updated in place.
type Subscriber struct {
	Contact   string      `json:"contact" db:"contact"`
	Location  string      `json:"location" db:"location"`
	Kind      ContactKind `json:"contact_type" db:"contact_type"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// KindOfContact classifies a contact identifier by shape: any identifier
// containing '@' is an email address, everything else a phone number.
func KindOfContact(contact string) ContactKind {
	if strings.ContainsRune(contact, '@') {
		return ContactEmail
	}
	return ContactPhone
}

// NormalizePhone strips every non-digit rune so stored contacts and gateway
// endpoints compare equal regardless of formatting:
// "+1 (939) 555-0101" and "19395550101" normalize to the same string.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
