package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfContact(t *testing.T) {
	tests := []struct {
		contact  string
		expected ContactKind
	}{
		{"ana@example.com", ContactEmail},
		{"weird@", ContactEmail},
		{"+1 939-555-0101", ContactPhone},
		{"19395550101", ContactPhone},
		{"", ContactPhone},
	}

	for _, tt := range tests {
		t.Run(tt.contact, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOfContact(tt.contact))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"formatted US number", "+1 (939) 555-0101", "19395550101"},
		{"digits only unchanged", "19395550101", "19395550101"},
		{"dots and spaces", "939.555 0101", "9395550101"},
		{"no digits", "not-a-number", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.input))
		})
	}
}

func TestContactKindProtocol(t *testing.T) {
	assert.Equal(t, "email", ContactEmail.Protocol())
	assert.Equal(t, "sms", ContactPhone.Protocol())
}

func TestLocationByName(t *testing.T) {
	t.Run("exact name", func(t *testing.T) {
		loc, ok := LocationByName("Florida")
		assert.True(t, ok)
		assert.Equal(t, "Florida-topic", loc.Topic)
	})

	t.Run("case-insensitive with surrounding space", func(t *testing.T) {
		loc, ok := LocationByName("  puerto rico ")
		assert.True(t, ok)
		assert.Equal(t, "PuertoRico-topic", loc.Topic)
	})

	t.Run("unknown location", func(t *testing.T) {
		_, ok := LocationByName("Atlantis")
		assert.False(t, ok)
	})
}
