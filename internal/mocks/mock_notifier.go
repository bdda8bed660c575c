package mocks

import "github.com/you/estately/domain"

// MockNotifier implements domain.Notifier for testing
type MockNotifier struct {
	SendSMSFunc func(to, message string) error

	// Sent records delivered messages when the default behavior runs
	Sent []SentSMS
}

// SentSMS is one recorded SMS delivery.
type SentSMS struct {
	To      string
	Message string
}

// NewMockNotifier creates a new MockNotifier with default behaviors
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SendSMS records the message
func (m *MockNotifier) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	return nil
}

// Compile-time interface compliance verification
var _ domain.Notifier = (*MockNotifier)(nil)
