package main

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"github.com/unclebandit/customer-registration/internal/config"
	"github.com/unclebandit/customer-registration/internal/model"
	"github.com/unclebandit/customer-registration/internal/queue"
	"github.com/unclebandit/customer-registration/internal/service"
)

const maxRedeliveries = 3

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := queue.DeclareRegistrationQueue(ch, cfg.RegistrationQueue)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	worker := service.NewRegistrationWorker(mockSend)
	attempts := map[string]int{}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event model.RegistrationEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Println("Invalid event:", err)
				d.Ack(false)
				continue
			}

			if worker.Process(event) {
				delete(attempts, event.EventID)
				d.Ack(false)
				continue
			}

			// requeue up to maxRedeliveries times
			attempts[event.EventID]++
			if attempts[event.EventID] < maxRedeliveries {
				d.Nack(false, true)
				continue
			}
			log.Println("Giving up on event", event.EventID)
			delete(attempts, event.EventID)
			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for registrations...")
	<-forever
}

// mockSend stands in for an email/SMS provider
func mockSend(to, msg string) bool {
	log.Printf("📨 to=%s: %s\n", to, msg)
	return true
}
