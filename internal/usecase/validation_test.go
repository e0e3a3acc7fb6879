package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() IngestLeadInput {
	return IngestLeadInput{
		TenantID:      "tenant-123",
		CorrelationID: "7d4df28c-9a61-4f2a-9c09-d8f91e2a5b17",
		Email:         "test@example.com",
		FirstName:     "Maria",
		LastName:      "Silva",
		Phone:         "+55 (11) 99999-9999",
		Company:       "Acme Ltda",
		Source:        "website",
		Metadata:      `{"utm_source":"google"}`,
	}
}

func findViolation(t *testing.T, violations []ValidationError, field string) ValidationError {
	t.Helper()
	for _, v := range violations {
		if v.Field == field {
			return v
		}
	}
	t.Fatalf("expected violation for field %q, got %v", field, violations)
	return ValidationError{}
}

func TestValidInputHasNoViolations(t *testing.T) {
	assert.Empty(t, ValidateIngestLeadInput(validInput()))
}

func TestOptionalFieldsMayBeOmitted(t *testing.T) {
	input := validInput()
	input.FirstName = ""
	input.LastName = ""
	input.Phone = ""
	input.Company = ""
	input.Metadata = ""
	input.MessageTimestamp = ""

	assert.Empty(t, ValidateIngestLeadInput(input))
}

func TestRequiredFields(t *testing.T) {
	cases := []struct {
		field   string
		mutate  func(*IngestLeadInput)
		message string
	}{
		{"tenant_id", func(i *IngestLeadInput) { i.TenantID = "" }, "TenantId is required"},
		{"tenant_id", func(i *IngestLeadInput) { i.TenantID = "   " }, "TenantId is required"},
		{"correlation_id", func(i *IngestLeadInput) { i.CorrelationID = "" }, "CorrelationId is required"},
		{"email", func(i *IngestLeadInput) { i.Email = "" }, "Email is required"},
		{"source", func(i *IngestLeadInput) { i.Source = "" }, "Source is required"},
	}

	for _, tc := range cases {
		input := validInput()
		tc.mutate(&input)
		v := findViolation(t, ValidateIngestLeadInput(input), tc.field)
		assert.Equal(t, tc.message, v.Message)
	}
}

func TestLengthLimits(t *testing.T) {
	cases := []struct {
		field   string
		mutate  func(*IngestLeadInput)
		message string
	}{
		{"tenant_id", func(i *IngestLeadInput) { i.TenantID = strings.Repeat("a", 101) }, "TenantId must not exceed 100 characters"},
		{"email", func(i *IngestLeadInput) { i.Email = strings.Repeat("a", 250) + "@b.co" }, "Email must not exceed 254 characters"},
		{"first_name", func(i *IngestLeadInput) { i.FirstName = strings.Repeat("a", 101) }, "FirstName must not exceed 100 characters"},
		{"last_name", func(i *IngestLeadInput) { i.LastName = strings.Repeat("a", 101) }, "LastName must not exceed 100 characters"},
		{"phone", func(i *IngestLeadInput) { i.Phone = "+" + strings.Repeat("1", 25) }, "Phone must not exceed 20 characters"},
		{"company", func(i *IngestLeadInput) { i.Company = strings.Repeat("a", 201) }, "Company must not exceed 200 characters"},
		{"source", func(i *IngestLeadInput) { i.Source = strings.Repeat("a", 51) }, "Source must not exceed 50 characters"},
		{"metadata", func(i *IngestLeadInput) { i.Metadata = `"` + strings.Repeat("a", 4001) + `"` }, "Metadata must not exceed 4000 characters"},
	}

	for _, tc := range cases {
		input := validInput()
		tc.mutate(&input)
		v := findViolation(t, ValidateIngestLeadInput(input), tc.field)
		assert.Equal(t, tc.message, v.Message)
	}
}

func TestCorrelationIDFormats(t *testing.T) {
	valid := []string{
		"7d4df28c-9a61-4f2a-9c09-d8f91e2a5b17",
		"7D4DF28C-9A61-4F2A-9C09-D8F91E2A5B17",
		"7d4df28c9a614f2a9c09d8f91e2a5b17", // sem hífens
	}
	for _, id := range valid {
		input := validInput()
		input.CorrelationID = id
		assert.Empty(t, ValidateIngestLeadInput(input), "correlation id %q should be valid", id)
	}

	invalid := []string{"not-a-uuid", "12345", "7d4df28c-9a61-4f2a-9c09"}
	for _, id := range invalid {
		input := validInput()
		input.CorrelationID = id
		v := findViolation(t, ValidateIngestLeadInput(input), "correlation_id")
		assert.Equal(t, "CorrelationId must be a valid UUID", v.Message)
	}
}

func TestEmailFormat(t *testing.T) {
	invalid := []string{"not-an-email", "a b@example.com", "Maria <maria@example.com>", "@example.com"}
	for _, email := range invalid {
		input := validInput()
		input.Email = email
		v := findViolation(t, ValidateIngestLeadInput(input), "email")
		assert.Equal(t, "Email must be a valid email address", v.Message, "email %q", email)
	}
}

// "123" tem só 3 dígitos: menos que o mínimo de 7.
func TestPhoneWithThreeDigitsIsRejected(t *testing.T) {
	input := validInput()
	input.Phone = "123"

	v := findViolation(t, ValidateIngestLeadInput(input), "phone")
	assert.Equal(t, "Phone must be a valid phone number format", v.Message)
}

func TestPhoneFormats(t *testing.T) {
	valid := []string{"+5511999999999", "(11) 99999-9999", "1234567"}
	for _, phone := range valid {
		input := validInput()
		input.Phone = phone
		assert.Empty(t, ValidateIngestLeadInput(input), "phone %q should be valid", phone)
	}

	invalid := []string{"abc1234567", "12345678x", "+55*11999999999"}
	for _, phone := range invalid {
		input := validInput()
		input.Phone = phone
		v := findViolation(t, ValidateIngestLeadInput(input), "phone")
		assert.Equal(t, "Phone must be a valid phone number format", v.Message)
	}
}

// Chave sem aspas não é JSON.
func TestMetadataWithUnquotedKeyIsRejected(t *testing.T) {
	input := validInput()
	input.Metadata = "{key:value}"

	v := findViolation(t, ValidateIngestLeadInput(input), "metadata")
	assert.Equal(t, "Metadata must be valid JSON when provided", v.Message)
}

func TestMetadataAcceptsAnyValidJSONValue(t *testing.T) {
	for _, metadata := range []string{`{}`, `[]`, `"texto"`, `42`, `null`, `{"a":{"b":[1,2]}}`} {
		input := validInput()
		input.Metadata = metadata
		assert.Empty(t, ValidateIngestLeadInput(input), "metadata %q should be valid", metadata)
	}
}

func TestMessageTimestamp(t *testing.T) {
	valid := []string{
		"2026-08-30T12:00:00Z",
		"2026-08-30T12:00:00-03:00",
		"2026-08-30T12:00:00.123456Z",
		"2026-08-30T12:00:00", // sem offset: assume UTC
	}
	for _, ts := range valid {
		input := validInput()
		input.MessageTimestamp = ts
		assert.Empty(t, ValidateIngestLeadInput(input), "timestamp %q should be valid", ts)
	}

	input := validInput()
	input.MessageTimestamp = "30/08/2026 12:00"
	v := findViolation(t, ValidateIngestLeadInput(input), "message_timestamp")
	assert.Equal(t, "MessageTimestamp must be a valid ISO-8601 timestamp", v.Message)
}

// Validação é determinística e total: mesma entrada, mesmo conjunto de violações.
func TestValidationIsDeterministic(t *testing.T) {
	input := IngestLeadInput{Phone: "123", Metadata: "{key:value}"}

	first := ValidateIngestLeadInput(input)
	second := ValidateIngestLeadInput(input)

	assert.Equal(t, first, second)
	assert.Len(t, first, 6) // tenant_id, correlation_id, email, source, phone, metadata
}
