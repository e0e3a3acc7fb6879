package usecase

import (
	"fmt"
	"strings"
)

// ValidationFailedError carrega todas as violações, não só a primeira.
// Mensagem permanentemente improcessável: o consumidor manda pra DLQ.
type ValidationFailedError struct {
	Violations []ValidationError
}

func (e *ValidationFailedError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" ("+v.Message+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// DuplicateLeadError: correlation id já persistido. Resultado esperado de
// redelivery, não é falha de sistema — o consumidor dá Ack.
type DuplicateLeadError struct {
	CorrelationID string
}

func (e *DuplicateLeadError) Error() string {
	return fmt.Sprintf("lead already ingested for correlation id %s", e.CorrelationID)
}
