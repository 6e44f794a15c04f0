package repository

import (
	"context"

	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
)

// DivergenceRepository persistência das divergências entre guia local e SAL.
type DivergenceRepository interface {
	// CreateIfAbsent grava a divergência se ainda não existir uma para a
	// mesma emissão. Retorna created=false, sem erro, quando já havia
	// registro; isso impede alerta duplicado numa conciliação repetida.
	CreateIfAbsent(ctx context.Context, d *entity.Divergence) (created bool, err error)
	GetByEmissionID(ctx context.Context, emissionID string) (*entity.Divergence, error)
	ListUnresolved(ctx context.Context, limit, offset int) ([]*entity.Divergence, error)
	MarkResolved(ctx context.Context, id string) error
}
