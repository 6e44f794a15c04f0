package emission

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gesielr/guiasMEIlast/internal/application/dto"
	"github.com/gesielr/guiasMEIlast/internal/domain"
	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/internal/domain/inss"
	"github.com/gesielr/guiasMEIlast/internal/domain/repository"
	"github.com/gesielr/guiasMEIlast/pkg/gps"
	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

// UseCase orquestra a emissão de guias GPS.
//
// Fluxo: valida o pedido, resolve valor e contribuinte, decide o método
// (local, local com conferência ou SAL oficial), gera ou solicita o código
// de barras, monta o PDF e persiste a emissão. A conferência em background,
// quando sorteada, só é agendada depois que o registro está gravado.
type UseCase struct {
	profiles    repository.ProfileRepository
	emissions   repository.EmissionRepository
	divergences repository.DivergenceRepository
	strategy    *Strategy
	authority   AuthorityClient
	reconciler  *Reconciler
	renderer    Renderer
	calculator  *inss.Calculator
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase monta o caso de uso com todas as dependências explícitas.
func NewUseCase(
	profiles repository.ProfileRepository,
	emissions repository.EmissionRepository,
	divergences repository.DivergenceRepository,
	strategy *Strategy,
	authority AuthorityClient,
	reconciler *Reconciler,
	renderer Renderer,
	calculator *inss.Calculator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		profiles:    profiles,
		emissions:   emissions,
		divergences: divergences,
		strategy:    strategy,
		authority:   authority,
		reconciler:  reconciler,
		renderer:    renderer,
		calculator:  calculator,
		log:         log,
		now:         time.Now,
	}
}

// Emit emite uma guia GPS para o usuário autenticado.
func (uc *UseCase) Emit(ctx context.Context, userID string, req dto.EmitGPSRequest) (*dto.EmitGPSResponse, error) {
	competence, err := gps.ParseCompetence(req.Competence)
	if err != nil {
		return nil, fmt.Errorf("%w: competência: %v", domain.ErrInvalidInput, err)
	}
	if err := inss.ValidateCompetence(competence, uc.now()); err != nil {
		return nil, err
	}

	profile, err := uc.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("carregar perfil: %w", err)
	}

	paymentCode, amount, description, err := uc.resolvePayment(req)
	if err != nil {
		return nil, err
	}

	taxpayerID := strings.TrimSpace(req.TaxpayerID)
	if taxpayerID == "" {
		taxpayerID = profile.NIT
	}
	if taxpayerID == "" {
		// Sem NIT cadastrado, o CPF cumpre o papel de identificador no SAL.
		taxpayerID = profile.CPF
	}
	if taxpayerID == "" {
		return nil, fmt.Errorf("%w: contribuinte sem NIT ou CPF cadastrado", domain.ErrInvalidInput)
	}

	if req.ForcedMethod != "" && !validMethod(req.ForcedMethod) {
		return nil, fmt.Errorf("%w: método de emissão desconhecido: %s", domain.ErrInvalidInput, req.ForcedMethod)
	}

	method := uc.strategy.Decide(req.ForcedMethod, competence, profile.PreferAuthority)

	var (
		barcode, line string
		dueDate       time.Time
		validated     bool
		pending       bool
	)

	switch method {
	case entity.MethodAuthority:
		barcode, line, dueDate, err = uc.emitViaAuthority(ctx, taxpayerID, paymentCode, competence, amount)
		if err != nil {
			// SAL fora do ar não pode impedir o contribuinte de pagar em dia:
			// degradamos para geração local e deixamos a validação pendente.
			uc.log.Warn().
				Err(err).
				Str("usuario_id", userID).
				Msg("SAL indisponível, emitindo localmente com validação pendente")
			method = entity.MethodLocal
			pending = true
			barcode, line, dueDate, err = uc.emitLocally(taxpayerID, paymentCode, competence, amount)
			if err != nil {
				return nil, err
			}
		} else {
			validated = true
		}
	default:
		barcode, line, dueDate, err = uc.emitLocally(taxpayerID, paymentCode, competence, amount)
		if err != nil {
			return nil, err
		}
		// Guia sorteada para conferência nasce pendente; MarkValidated limpa
		// a pendência quando o SAL confirmar o mesmo código.
		if method == entity.MethodLocalValidated {
			pending = true
		}
	}

	pdfBytes, err := uc.renderPDF(profile, taxpayerID, paymentCode, description, competence, dueDate, amount, barcode, line)
	if err != nil {
		return nil, fmt.Errorf("gerar PDF da guia: %w", err)
	}

	em := &entity.Emission{
		ID:                   uuid.New().String(),
		UserID:               userID,
		PaymentCode:          paymentCode,
		Competence:           competence.String(),
		Amount:               amount,
		Barcode:              barcode,
		DigitizableLine:      line,
		Method:               method,
		Status:               entity.EmissionStatusPending,
		DueDate:              dueDate,
		ValidatedByAuthority: validated,
		PendingValidation:    pending,
		CreatedAt:            uc.now(),
		UpdatedAt:            uc.now(),
	}
	if validated {
		at := uc.now()
		em.ValidatedAt = &at
	}

	if err := uc.emissions.Create(ctx, em); err != nil {
		// Guia é válida mesmo sem registro: devolvemos ao contribuinte e
		// registramos a falha. Sem registro, não agendamos conferência.
		uc.log.Error().Err(err).Str("usuario_id", userID).Msg("falha ao persistir emissão, guia devolvida sem registro")
		return uc.toResponse(em, pdfBytes), nil
	}

	if method == entity.MethodLocalValidated {
		uc.reconciler.Enqueue(ReconcileJob{
			EmissionID:   em.ID,
			UserID:       userID,
			TaxpayerID:   taxpayerID,
			PaymentCode:  paymentCode,
			Competence:   competence,
			Amount:       amount,
			LocalBarcode: barcode,
		})
	}

	uc.log.Info().
		Str("emissao_id", em.ID).
		Str("metodo", method).
		Str("competencia", em.Competence).
		Str("valor", amount.StringFixed(2)).
		Msg("guia GPS emitida")

	return uc.toResponse(em, pdfBytes), nil
}

// resolvePayment determina código de pagamento e valor: direto do pedido ou
// calculado a partir da categoria de contribuinte.
func (uc *UseCase) resolvePayment(req dto.EmitGPSRequest) (code string, amount decimal.Decimal, description string, err error) {
	if req.Class != "" {
		contrib, cerr := uc.calculator.Calculate(req.Class, req.Base)
		if cerr != nil {
			return "", decimal.Zero, "", cerr
		}
		code = contrib.PaymentCode
		if req.PaymentCode != "" {
			code = req.PaymentCode
		}
		return code, contrib.Amount, contrib.Description, nil
	}

	if req.PaymentCode == "" {
		return "", decimal.Zero, "", fmt.Errorf("%w: informe payment_code ou class", domain.ErrInvalidInput)
	}
	if !req.Amount.IsPositive() {
		return "", decimal.Zero, "", fmt.Errorf("%w: valor deve ser positivo", domain.ErrInvalidInput)
	}
	return req.PaymentCode, req.Amount.Round(2), "", nil
}

func (uc *UseCase) emitLocally(taxpayerID, paymentCode string, competence gps.Competence, amount decimal.Decimal) (string, string, time.Time, error) {
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	barcode, err := gps.Encode(gps.Fields{
		PaymentCode: paymentCode,
		Competence:  competence,
		AmountCents: cents,
		TaxpayerID:  taxpayerID,
	})
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	line, err := gps.DigitizableLine(barcode)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return barcode, line, competence.DueDate(), nil
}

func (uc *UseCase) emitViaAuthority(ctx context.Context, taxpayerID, paymentCode string, competence gps.Competence, amount decimal.Decimal) (string, string, time.Time, error) {
	res, err := uc.authority.Emit(ctx, AuthorityRequest{
		TaxpayerID:  taxpayerID,
		PaymentCode: paymentCode,
		Competence:  competence,
		Amount:      amount,
	})
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("%w: %v", domain.ErrAuthorityUnavailable, err)
	}
	line := res.DigitizableLine
	if line == "" {
		line, err = gps.DigitizableLine(res.Barcode)
		if err != nil {
			return "", "", time.Time{}, fmt.Errorf("código de barras do SAL inválido: %w", err)
		}
	}
	due := res.DueDate
	if due.IsZero() {
		due = competence.DueDate()
	}
	return res.Barcode, line, due, nil
}

func (uc *UseCase) renderPDF(profile *entity.Profile, taxpayerID, paymentCode, description string, competence gps.Competence, dueDate time.Time, amount decimal.Decimal, barcode, line string) ([]byte, error) {
	if description == "" {
		if class, ok := inss.ClassByPaymentCode(paymentCode); ok {
			description = class.Description
		}
	}
	return uc.renderer.Render(GuideDocument{
		TaxpayerName:    profile.Name,
		TaxpayerID:      taxpayerID,
		Address:         profile.Address,
		Phone:           profile.Phone,
		PaymentCode:     paymentCode,
		CodeDescription: description,
		Competence:      competence,
		DueDate:         dueDate,
		Amount:          amount,
		Barcode:         barcode,
		DigitizableLine: line,
	})
}

func (uc *UseCase) toResponse(em *entity.Emission, pdfBytes []byte) *dto.EmitGPSResponse {
	resp := &dto.EmitGPSResponse{
		ID:                   em.ID,
		Barcode:              em.Barcode,
		DigitizableLine:      em.DigitizableLine,
		Amount:               em.Amount,
		DueDate:              em.DueDate,
		Competence:           em.Competence,
		PaymentCode:          em.PaymentCode,
		Method:               em.Method,
		ValidatedByAuthority: em.ValidatedByAuthority,
		PendingValidation:    em.PendingValidation,
		PDFURL:               em.PDFURL,
	}
	if len(pdfBytes) > 0 {
		resp.PDFBase64 = base64.StdEncoding.EncodeToString(pdfBytes)
	}
	return resp
}

// List devolve as emissões do usuário, mais recentes primeiro.
func (uc *UseCase) List(ctx context.Context, userID string, page dto.PageRequest) ([]*entity.Emission, error) {
	page.Normalize()
	return uc.emissions.List(ctx, repository.EmissionFilter{
		UserID: userID,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetByID devolve uma emissão do usuário. Emissão de outro usuário é tratada
// como inexistente.
func (uc *UseCase) GetByID(ctx context.Context, userID, id string) (*entity.Emission, error) {
	em, err := uc.emissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if em.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return em, nil
}

// ListDivergences lista divergências não resolvidas (visão administrativa).
func (uc *UseCase) ListDivergences(ctx context.Context, page dto.PageRequest) ([]*entity.Divergence, error) {
	page.Normalize()
	return uc.divergences.ListUnresolved(ctx, page.Limit, page.Offset)
}

// ResolveDivergence marca uma divergência como tratada.
func (uc *UseCase) ResolveDivergence(ctx context.Context, id string) error {
	return uc.divergences.MarkResolved(ctx, id)
}

func validMethod(m string) bool {
	switch m {
	case entity.MethodLocal, entity.MethodLocalValidated, entity.MethodAuthority:
		return true
	}
	return false
}
