package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"

	"github.com/google/uuid"

	"github.com/xavierca1/lead-ingestion/internal/config"
	"github.com/xavierca1/lead-ingestion/internal/infra/queue"
)

// Ferramenta de teste manual: publica um evento LeadCreated bem formado na
// exchange, com correlation id novo a cada execução.
func main() {
	email := flag.String("email", "test@example.com", "lead email")
	tenant := flag.String("tenant", "tenant-123", "tenant id")
	source := flag.String("source", "website", "lead source")
	phone := flag.String("phone", "+55 (11) 99999-9999", "lead phone")
	flag.Parse()

	cfg := config.Load()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.User, cfg.RabbitMQ.Pass, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	payload := queue.LeadCreatedPayload{
		TenantID:      *tenant,
		CorrelationID: uuid.New().String(),
		Email:         *email,
		FirstName:     "Maria",
		LastName:      "Silva",
		Phone:         *phone,
		Company:       "Acme Ltda",
		Source:        *source,
		Metadata:      json.RawMessage(`{"utm_source":"google","utm_campaign":"brand"}`),
	}

	if err := producer.PublishLeadCreated(context.Background(), payload); err != nil {
		log.Fatal(err)
	}

	log.Printf("published LeadCreated correlation_id=%s", payload.CorrelationID)
}
