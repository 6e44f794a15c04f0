package repository

import (
	"context"
	"time"

	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
)

// EmissionFilter filtros de listagem de guias.
type EmissionFilter struct {
	UserID     string
	Competence string // opcional, "MM/YYYY"
	Method     string // opcional
	Limit      int
	Offset     int
}

// EmissionRepository persistência das guias GPS emitidas.
// Create deve ser idempotente em retentativa (mesmo ID não duplica registro).
type EmissionRepository interface {
	Create(ctx context.Context, e *entity.Emission) error
	GetByID(ctx context.Context, id string) (*entity.Emission, error)
	List(ctx context.Context, f EmissionFilter) ([]*entity.Emission, error)
	// MarkValidated marca a guia como conferida no SAL e limpa a pendência.
	MarkValidated(ctx context.Context, id string, at time.Time) error
}
