package leads

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Source string

const (
	SourceLogin   Source = "login"
	SourceContact Source = "contact"
)

// Lead is one row of the lead log.
type Lead struct {
	ID        uuid.UUID `json:"id"`
	Source    Source    `json:"source"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository appends leads. It is used best-effort; callers log failures.
type Repository interface {
	Save(ctx context.Context, l Lead) error
	Recent(ctx context.Context, limit int) ([]Lead, error)
}
