package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/unclebandit/customer-registration/internal/model"
)

// RegistrationTopic carries model.RegistrationEvent payloads
const RegistrationTopic = "customer_registered"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue fans payloads out to subscribers and retries failed handlers
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	MaxRetries int
	Backoff    time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: q.MaxRetries,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %v\n", job.RetryCount, job.MaxRetries, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts\n", job.MaxRetries)
			return
		}

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// EventPublisher delivers registration events outside the process
type EventPublisher interface {
	PublishEvent(event model.RegistrationEvent) error
}

// StartRegistrationForwarder relays registration events to the broker; a failed publish is retried by the queue
func StartRegistrationForwarder(q Queue, publisher EventPublisher) error {
	return q.Subscribe(RegistrationTopic, func(payload any) error {
		event, ok := payload.(model.RegistrationEvent)
		if !ok {
			log.Println("⚠️ Invalid payload type, expected RegistrationEvent")
			return nil // no retry
		}

		if err := publisher.PublishEvent(event); err != nil {
			log.Println("⚠️ Failed to forward registration event:", err)
			return err
		}

		log.Println("📤 Registration event forwarded:", event.EventID)
		return nil
	})
}

// StartRegistrationLogger is used when no broker is configured
func StartRegistrationLogger(q Queue) error {
	return q.Subscribe(RegistrationTopic, func(payload any) error {
		event, ok := payload.(model.RegistrationEvent)
		if !ok {
			log.Println("⚠️ Invalid payload type, expected RegistrationEvent")
			return nil
		}
		log.Printf("📩 Customer registered: %s %s <%s> (event %s)\n",
			event.Customer.FirstName, event.Customer.LastName, event.Customer.Email, event.EventID)
		return nil
	})
}
