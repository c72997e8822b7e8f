package credentials

import (
	"context"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

// Repository persists the single bearer credential between runs.
type Repository interface {
	// Load returns common.ErrorNotFound when nothing is stored.
	Load(ctx context.Context) (models.Credential, error)
	Save(ctx context.Context, c models.Credential) error
	Clear(ctx context.Context) error
}
