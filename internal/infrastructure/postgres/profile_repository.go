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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo persistência de perfis de contribuinte.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `id, name, email, password_hash, cpf, nit, address, phone, uf,
		prefer_authority, created_at, updated_at`

// Create persiste um novo perfil.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Email, p.PasswordHash, p.CPF, p.NIT, p.Address, p.Phone, p.UF,
		p.PreferAuthority, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert perfil: %w", err)
	}
	return nil
}

// GetByID busca um perfil por ID.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get perfil: %w", err)
	}
	return p, nil
}

// GetByEmail busca um perfil pelo email (já normalizado para minúsculas).
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	p, err := scanProfile(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get perfil por email: %w", err)
	}
	return p, nil
}

// Update atualiza os dados cadastrais do perfil.
func (r *ProfileRepo) Update(ctx context.Context, p *entity.Profile) error {
	query := `
		UPDATE profiles
		SET name = $2, email = $3, password_hash = $4, cpf = $5, nit = $6, address = $7,
		    phone = $8, uf = $9, prefer_authority = $10, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Email, p.PasswordHash, p.CPF, p.NIT, p.Address,
		p.Phone, p.UF, p.PreferAuthority,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update perfil: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.CPF, &p.NIT, &p.Address, &p.Phone, &p.UF,
		&p.PreferAuthority, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
