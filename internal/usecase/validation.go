package usecase

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

func ValidateIngestLeadInput(input IngestLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.TenantID) == "" {
		errors = append(errors, ValidationError{"tenant_id", "TenantId is required"})
	} else if len(input.TenantID) > 100 {
		errors = append(errors, ValidationError{"tenant_id", "TenantId must not exceed 100 characters"})
	}

	if strings.TrimSpace(input.CorrelationID) == "" {
		errors = append(errors, ValidationError{"correlation_id", "CorrelationId is required"})
	} else if !isValidUUID(input.CorrelationID) {
		errors = append(errors, ValidationError{"correlation_id", "CorrelationId must be a valid UUID"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "Email is required"})
	} else if len(input.Email) > 254 {
		errors = append(errors, ValidationError{"email", "Email must not exceed 254 characters"})
	} else if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "Email must be a valid email address"})
	}

	if len(input.FirstName) > 100 {
		errors = append(errors, ValidationError{"first_name", "FirstName must not exceed 100 characters"})
	}

	if len(input.LastName) > 100 {
		errors = append(errors, ValidationError{"last_name", "LastName must not exceed 100 characters"})
	}

	if input.Phone != "" {
		if len(input.Phone) > 20 {
			errors = append(errors, ValidationError{"phone", "Phone must not exceed 20 characters"})
		} else if !isValidPhoneNumber(input.Phone) {
			errors = append(errors, ValidationError{"phone", "Phone must be a valid phone number format"})
		}
	}

	if len(input.Company) > 200 {
		errors = append(errors, ValidationError{"company", "Company must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Source) == "" {
		errors = append(errors, ValidationError{"source", "Source is required"})
	} else if len(input.Source) > 50 {
		errors = append(errors, ValidationError{"source", "Source must not exceed 50 characters"})
	}

	if input.Metadata != "" {
		if len(input.Metadata) > 4000 {
			errors = append(errors, ValidationError{"metadata", "Metadata must not exceed 4000 characters"})
		} else if !json.Valid([]byte(input.Metadata)) {
			errors = append(errors, ValidationError{"metadata", "Metadata must be valid JSON when provided"})
		}
	}

	if input.MessageTimestamp != "" && !isValidTimestamp(input.MessageTimestamp) {
		errors = append(errors, ValidationError{"message_timestamp", "MessageTimestamp must be a valid ISO-8601 timestamp"})
	}

	return errors
}

// isValidUUID aceita a forma canônica com hífens e a forma compacta de 32
// hexadecimais, maiúsculas ou minúsculas.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func isValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// Rejeita formas com display name ("Nome <a@b>"): só o endereço puro.
	return addr.Address == email
}

func isValidPhoneNumber(phone string) bool {
	if !phonePattern.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

func isValidTimestamp(value string) bool {
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return true
	}
	// Sem offset: assume UTC.
	if _, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return true
	}
	return false
}
