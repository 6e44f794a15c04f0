package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gesielr/guiasMEIlast/internal/domain"
	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/internal/domain/repository"
)

var _ repository.DivergenceRepository = (*DivergenceRepo)(nil)

// DivergenceRepo persistência de divergências detectadas pela conferência.
type DivergenceRepo struct {
	q Querier
}

// NewDivergenceRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewDivergenceRepository(q Querier) *DivergenceRepo {
	return &DivergenceRepo{q: q}
}

const divergenceColumns = `id, emission_id, user_id, competence, amount, local_barcode,
		authority_barcode, kind, resolved, created_at`

// CreateIfAbsent registra a divergência se a emissão ainda não tiver uma.
// Idempotente: a constraint única em emission_id absorve reconferências.
func (r *DivergenceRepo) CreateIfAbsent(ctx context.Context, d *entity.Divergence) (bool, error) {
	query := `
		INSERT INTO gps_divergences (` + divergenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (emission_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.EmissionID, d.UserID, d.Competence, d.Amount, d.LocalBarcode,
		d.AuthorityBarcode, d.Kind, d.Resolved, d.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert divergência: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByEmissionID busca a divergência de uma emissão.
func (r *DivergenceRepo) GetByEmissionID(ctx context.Context, emissionID string) (*entity.Divergence, error) {
	query := `SELECT ` + divergenceColumns + ` FROM gps_divergences WHERE emission_id = $1`
	d, err := scanDivergence(r.q.QueryRow(ctx, query, emissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get divergência: %w", err)
	}
	return d, nil
}

// ListUnresolved lista divergências ainda não tratadas, mais antigas primeiro.
func (r *DivergenceRepo) ListUnresolved(ctx context.Context, limit, offset int) ([]*entity.Divergence, error) {
	query := `
		SELECT ` + divergenceColumns + ` FROM gps_divergences
		WHERE resolved = FALSE ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar divergências: %w", err)
	}
	defer rows.Close()

	var list []*entity.Divergence
	for rows.Next() {
		d, err := scanDivergence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan divergência: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// MarkResolved marca a divergência como tratada.
func (r *DivergenceRepo) MarkResolved(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE gps_divergences SET resolved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("resolver divergência: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDivergence(row pgx.Row) (*entity.Divergence, error) {
	var d entity.Divergence
	err := row.Scan(
		&d.ID, &d.EmissionID, &d.UserID, &d.Competence, &d.Amount, &d.LocalBarcode,
		&d.AuthorityBarcode, &d.Kind, &d.Resolved, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
