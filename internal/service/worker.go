package service

import (
	"log"

	"github.com/unclebandit/customer-registration/internal/model"
)

// RegistrationWorker sends a welcome message for each registration event.
// The caller owns delivery and acknowledgement.
type RegistrationWorker struct {
	SendFunc func(to, msg string) bool
}

// Constructor
func NewRegistrationWorker(sendFunc func(to, msg string) bool) *RegistrationWorker {
	return &RegistrationWorker{
		SendFunc: sendFunc,
	}
}

// Process renders and sends one welcome message and reports whether it went out
func (w *RegistrationWorker) Process(event model.RegistrationEvent) bool {
	to := event.Customer.Email
	if to == "" {
		to = event.Customer.ContactNumber
	}
	if to == "" {
		log.Println("⚠️ Registration event without a recipient:", event.EventID)
		return true // nothing to retry
	}

	msg := RenderWelcome(event)
	if !w.SendFunc(to, msg) {
		log.Println("❌ Failed to send welcome message for event", event.EventID)
		return false
	}

	log.Println("✅ Welcome message sent to", to)
	return true
}
