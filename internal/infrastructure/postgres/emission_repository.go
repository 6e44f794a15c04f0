package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gesielr/guiasMEIlast/internal/domain"
	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/internal/domain/repository"
)

var _ repository.EmissionRepository = (*EmissionRepo)(nil)

// EmissionRepo persistência de emissões de GPS (usável com pool ou tx).
type EmissionRepo struct {
	q Querier
}

// NewEmissionRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewEmissionRepository(q Querier) *EmissionRepo {
	return &EmissionRepo{q: q}
}

const emissionColumns = `id, user_id, payment_code, competence, amount, barcode, digitizable_line,
		method, status, due_date, pdf_url, validated_by_authority, validated_at, pending_validation,
		created_at, updated_at`

// Create persiste uma nova emissão.
func (r *EmissionRepo) Create(ctx context.Context, e *entity.Emission) error {
	query := `
		INSERT INTO gps_emissions (` + emissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UserID, e.PaymentCode, e.Competence, e.Amount, e.Barcode, e.DigitizableLine,
		e.Method, e.Status, e.DueDate, e.PDFURL, e.ValidatedByAuthority, e.ValidatedAt, e.PendingValidation,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert emissão: %w", err)
	}
	return nil
}

// GetByID busca uma emissão por ID.
func (r *EmissionRepo) GetByID(ctx context.Context, id string) (*entity.Emission, error) {
	query := `SELECT ` + emissionColumns + ` FROM gps_emissions WHERE id = $1`
	e, err := scanEmission(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get emissão: %w", err)
	}
	return e, nil
}

// List lista emissões pelo filtro, mais recentes primeiro.
func (r *EmissionRepo) List(ctx context.Context, f repository.EmissionFilter) ([]*entity.Emission, error) {
	query := `SELECT ` + emissionColumns + ` FROM gps_emissions WHERE 1=1`
	args := []any{}
	n := 0
	if f.UserID != "" {
		n++
		query += fmt.Sprintf(" AND user_id = $%d", n)
		args = append(args, f.UserID)
	}
	if f.Competence != "" {
		n++
		query += fmt.Sprintf(" AND competence = $%d", n)
		args = append(args, f.Competence)
	}
	if f.Method != "" {
		n++
		query += fmt.Sprintf(" AND method = $%d", n)
		args = append(args, f.Method)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar emissões: %w", err)
	}
	defer rows.Close()

	var list []*entity.Emission
	for rows.Next() {
		e, err := scanEmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan emissão: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// MarkValidated marca a emissão como conferida pelo SAL.
func (r *EmissionRepo) MarkValidated(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE gps_emissions
		SET validated_by_authority = TRUE, validated_at = $2, pending_validation = FALSE, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("marcar emissão validada: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEmission(row pgx.Row) (*entity.Emission, error) {
	var e entity.Emission
	err := row.Scan(
		&e.ID, &e.UserID, &e.PaymentCode, &e.Competence, &e.Amount, &e.Barcode, &e.DigitizableLine,
		&e.Method, &e.Status, &e.DueDate, &e.PDFURL, &e.ValidatedByAuthority, &e.ValidatedAt, &e.PendingValidation,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
