package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
)

// View types
const (
	ViewTypeTree = "tree"
	ViewTypeForm = "form"
)

// View is the stored XML arch of a model view
type View struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Model     string
	ViewType  string
	Arch      string
	UpdatedAt time.Time
}

// NewView creates a view definition
func NewView(tenantID uuid.UUID, model, viewType, arch string) (*View, error) {
	if model == "" || viewType == "" {
		return nil, shared.NewDomainError("INVALID_VIEW", "View model and type are required")
	}
	if strings.TrimSpace(arch) == "" {
		return nil, shared.NewDomainError("INVALID_VIEW", "View arch cannot be empty")
	}
	return &View{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Model:     model,
		ViewType:  viewType,
		Arch:      arch,
		UpdatedAt: time.Now(),
	}, nil
}

// ViewRepository defines the interface for view persistence
type ViewRepository interface {
	// Find returns the view of a model, or shared.ErrNotFound
	Find(ctx context.Context, tenantID uuid.UUID, model, viewType string) (*View, error)
	// Save creates or replaces the view of a model
	Save(ctx context.Context, view *View) error
}

// ViewCache caches computed view archs by key
type ViewCache interface {
	// Get returns the cached arch and whether it was found
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, arch string) error
	Delete(ctx context.Context, key string) error
}
