package usecase

type IngestLeadInput struct {
	TenantID      string `json:"tenant_id"`
	CorrelationID string `json:"correlation_id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Source        string `json:"source"`
	Metadata      string `json:"metadata"`

	// MessageTimestamp vem do atributo de transporte; só auditoria/log.
	MessageTimestamp string `json:"message_timestamp"`
}

type IngestLeadOutput struct {
	LeadID        int64  `json:"lead_id"`
	CorrelationID string `json:"correlation_id"`
}
