// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unclebandit/customer-registration/internal/config"
	"github.com/unclebandit/customer-registration/internal/controller"
	"github.com/unclebandit/customer-registration/internal/handler"
	"github.com/unclebandit/customer-registration/internal/queue"
	"github.com/unclebandit/customer-registration/internal/repository"
	"github.com/unclebandit/customer-registration/internal/service"
	"github.com/unclebandit/customer-registration/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	q := queue.NewInMemoryQueue()
	if cfg.AMQPURL != "" {
		publisher, err := queue.DialAMQP(cfg.AMQPURL, cfg.RegistrationQueue)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer publisher.Close()
		if err := queue.StartRegistrationForwarder(q, publisher); err != nil {
			log.Fatal(err)
		}
		log.Println("✅ Forwarding registrations to queue", cfg.RegistrationQueue)
	} else if err := queue.StartRegistrationLogger(q); err != nil {
		log.Fatal(err)
	}

	httpClient := &http.Client{Timeout: cfg.GraphQLTimeout}
	customerRepo := repository.NewCustomerInformationRepository(cfg.GraphQLEndpoint, httpClient)

	customerService := &service.CustomerInformationService{
		Repo:          customerRepo,
		Validator:     validation.New(),
		Queue:         q,
		QRCodeBaseURL: cfg.QRCodeBaseURL,
		HashPasswords: cfg.HashPasswords,
	}

	customerController := &controller.CustomerInformationController{
		CustomerInformationService: customerService,
	}

	pageHandler := handler.NewPageHandler(customerService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Page routes
	r.Get("/", pageHandler.Index)
	r.Post("/customers", pageHandler.Submit)
	r.Post("/customers/validate", pageHandler.ValidateField)
	r.Handle("/static/*", pageHandler.Static())

	// API routes
	r.Route("/api/customers", func(r chi.Router) {
		r.Post("/", customerController.CreateCustomerInformation)
		r.Get("/", customerController.ListCustomerInformations)
		r.Post("/validate", customerController.ValidateField)
	})
	r.Get("/healthz", controller.Health)

	log.Println("🔗 GraphQL endpoint:", cfg.GraphQLEndpoint)
	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
