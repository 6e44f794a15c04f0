package repository

import (
	"context"

	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
)

// ProfileRepository persistência do cadastro de contribuintes.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
}
