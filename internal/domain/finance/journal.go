package finance

import (
	"strings"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
)

// JournalType classifies journals
type JournalType string

const (
	JournalTypeSale JournalType = "sale"
	JournalTypeBank JournalType = "bank"
	JournalTypeCash JournalType = "cash"
)

// IsValid checks if the journal type is known
func (t JournalType) IsValid() bool {
	return t == JournalTypeSale || t == JournalTypeBank || t == JournalTypeCash
}

// Journal is an accounting journal. Sale journals number invoices with their code.
type Journal struct {
	shared.TenantAggregateRoot
	Name   string
	Code   string
	Type   JournalType
	Active bool
}

// NewJournal creates an active journal
func NewJournal(tenantID uuid.UUID, name, code string, journalType JournalType) (*Journal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Journal name cannot be empty")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 5 {
		return nil, shared.NewDomainError("INVALID_CODE", "Journal code must have 1 to 5 characters")
	}
	if !journalType.IsValid() {
		return nil, shared.NewDomainError("INVALID_JOURNAL_TYPE", "Journal type must be sale, bank or cash")
	}
	return &Journal{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Code:                code,
		Type:                journalType,
		Active:              true,
	}, nil
}
