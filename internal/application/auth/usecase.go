// Package auth implementa cadastro e autenticação de contribuintes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gesielr/guiasMEIlast/internal/application/dto"
	"github.com/gesielr/guiasMEIlast/internal/domain"
	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/internal/domain/inss"
	"github.com/gesielr/guiasMEIlast/internal/domain/repository"
	"github.com/gesielr/guiasMEIlast/pkg/jwt"
	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

// UseCase casos de uso de autenticação.
type UseCase struct {
	profiles      repository.ProfileRepository
	jwtSecret     string
	jwtIssuer     string
	jwtExpMinutes int
	log           *logger.Logger
}

// NewUseCase cria o caso de uso de autenticação.
func NewUseCase(profiles repository.ProfileRepository, jwtSecret, jwtIssuer string, jwtExpMinutes int, log *logger.Logger) *UseCase {
	return &UseCase{
		profiles:      profiles,
		jwtSecret:     jwtSecret,
		jwtIssuer:     jwtIssuer,
		jwtExpMinutes: jwtExpMinutes,
		log:           log,
	}
}

// Register cadastra um novo contribuinte.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.ProfileBrief, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nome, email e senha são obrigatórios", domain.ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: senha deve ter ao menos 8 caracteres", domain.ErrInvalidInput)
	}
	if err := inss.ValidateCPF(req.CPF); err != nil {
		return nil, err
	}

	if _, err := uc.profiles.GetByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("consultar email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("gerar hash da senha: %w", err)
	}

	p := &entity.Profile{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    string(hash),
		CPF:             onlyDigits(req.CPF),
		NIT:             onlyDigits(req.NIT),
		Address:         req.Address,
		Phone:           req.Phone,
		UF:              strings.ToUpper(req.UF),
		PreferAuthority: req.PreferAuthority,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := uc.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("criar perfil: %w", err)
	}

	uc.log.Info().Str("usuario_id", p.ID).Msg("contribuinte cadastrado")
	return briefOf(p), nil
}

// Login autentica por email e senha e emite um JWT.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	p, err := uc.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("consultar perfil: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, p.ID, uc.jwtIssuer, uc.jwtExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}

	return &dto.LoginResponse{Token: token, User: *briefOf(p)}, nil
}

func briefOf(p *entity.Profile) *dto.ProfileBrief {
	return &dto.ProfileBrief{ID: p.ID, Name: p.Name, Email: p.Email, CPF: p.CPF, NIT: p.NIT}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
