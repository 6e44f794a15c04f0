package emission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesielr/guiasMEIlast/internal/application/dto"
	"github.com/gesielr/guiasMEIlast/internal/domain"
	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/internal/domain/inss"
	"github.com/gesielr/guiasMEIlast/pkg/gps"
	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

// Referência fixa dos testes: 20/11/2025.
var usecaseNow = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

type usecaseFixture struct {
	uc        *UseCase
	profiles  *fakeProfileRepo
	emissions *fakeEmissionRepo
	divs      *fakeDivergenceRepo
	authority *fakeAuthority
}

func newUsecaseFixture(t *testing.T, samplerHit bool) *usecaseFixture {
	t.Helper()
	log := logger.NewNop()

	profiles := newFakeProfileRepo()
	emissions := newFakeEmissionRepo()
	divs := newFakeDivergenceRepo()
	authority := &fakeAuthority{result: &AuthorityResult{
		Barcode: "85840000003036002701007000173176219552025113",
	}}

	require.NoError(t, profiles.Create(context.Background(), &entity.Profile{
		ID:    "user-1",
		Name:  "Maria da Silva",
		Email: "maria@example.com",
		CPF:   "52998224725",
		NIT:   "27317621955",
	}))

	strategy := NewStrategy(0.01, fakeSampler{hit: samplerHit}, log)
	strategy.now = func() time.Time { return usecaseNow }

	reconciler := NewReconciler(authority, emissions, divs, NewAlertDispatcher(nil, time.Second, log), 16, log)
	reconciler.jitter = func() time.Duration { return 0 }

	uc := NewUseCase(profiles, emissions, divs, strategy, authority, reconciler, fakeRenderer{}, inss.NewCalculator2025(), log)
	uc.now = func() time.Time { return usecaseNow }

	return &usecaseFixture{uc: uc, profiles: profiles, emissions: emissions, divs: divs, authority: authority}
}

func TestEmit_LocalGeraCodigoValido(t *testing.T) {
	fx := newUsecaseFixture(t, false)

	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		PaymentCode: "1007",
		Competence:  "11/2025",
		Amount:      decimal.RequireFromString("303.60"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodLocal, resp.Method)
	assert.Len(t, resp.Barcode, gps.BarcodeLength)
	assert.True(t, gps.Validate(resp.Barcode), "código de barras emitido deve passar no dígito verificador")
	assert.NotEmpty(t, resp.DigitizableLine)
	assert.NotEmpty(t, resp.PDFBase64)
	assert.Equal(t, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), resp.DueDate)
	assert.False(t, resp.ValidatedByAuthority)
	assert.False(t, resp.PendingValidation)
	assert.Zero(t, fx.authority.callCount(), "emissão local não deve tocar o SAL no caminho do pedido")

	saved, err := fx.emissions.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Barcode, saved.Barcode)
}

func TestEmit_SorteadaAgendaConferencia(t *testing.T) {
	fx := newUsecaseFixture(t, true)

	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		PaymentCode: "1007",
		Competence:  "11/2025",
		Amount:      decimal.RequireFromString("303.60"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MethodLocalValidated, resp.Method)
	assert.True(t, resp.PendingValidation, "guia sorteada nasce pendente de conferência")

	saved, err := fx.emissions.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, saved.PendingValidation)

	// O job fica na fila: o caminho do pedido devolve antes da conferência.
	assert.Zero(t, fx.authority.callCount())

	// Drenamos a fila manualmente e conferimos o efeito.
	fx.uc.reconciler.Start(1)
	fx.uc.reconciler.Stop()
	assert.Equal(t, 1, fx.authority.callCount())
	assert.True(t, fx.emissions.wasValidated(resp.ID))

	saved, err = fx.emissions.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.False(t, saved.PendingValidation, "conferência bem-sucedida limpa a pendência")
}

func TestEmit_SorteadaComSALForaDoArContinuaPendente(t *testing.T) {
	fx := newUsecaseFixture(t, true)
	fx.authority.err = errors.New("timeout na ponte SAL")

	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		PaymentCode: "1007",
		Competence:  "11/2025",
		Amount:      decimal.RequireFromString("303.60"),
	})
	require.NoError(t, err)

	fx.uc.reconciler.Start(1)
	fx.uc.reconciler.Stop()

	// Indisponibilidade não é divergência: a pendência distingue a guia
	// sorteada não conferida de uma emissão local comum.
	saved, err := fx.emissions.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, saved.PendingValidation)
	assert.False(t, saved.ValidatedByAuthority)
	assert.Zero(t, fx.divs.count())
}

func TestEmit_ValorCalculadoPorCategoria(t *testing.T) {
	fx := newUsecaseFixture(t, false)

	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		Class:      "autonomo",
		Base:       decimal.RequireFromString("2000.00"),
		Competence: "11/2025",
	})
	require.NoError(t, err)

	assert.Equal(t, "1007", resp.PaymentCode, "categoria resolve o código de pagamento")
	assert.True(t, decimal.RequireFromString("400.00").Equal(resp.Amount), "20%% de 2000, got %s", resp.Amount)
}

func TestEmit_ForcadoSALUsaAutoridade(t *testing.T) {
	fx := newUsecaseFixture(t, false)

	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		PaymentCode:  "1007",
		Competence:   "11/2025",
		Amount:       decimal.RequireFromString("303.60"),
		ForcedMethod: entity.MethodAuthority,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MethodAuthority, resp.Method)
	assert.Equal(t, "85840000003036002701007000173176219552025113", resp.Barcode)
	assert.True(t, resp.ValidatedByAuthority)
	assert.False(t, resp.PendingValidation)
	assert.Equal(t, 1, fx.authority.callCount())
}

func TestEmit_SALForaDoArDegradaParaLocal(t *testing.T) {
	fx := newUsecaseFixture(t, false)
	fx.authority.err = errors.New("timeout na ponte SAL")

	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		PaymentCode:  "1007",
		Competence:   "11/2025",
		Amount:       decimal.RequireFromString("303.60"),
		ForcedMethod: entity.MethodAuthority,
	})
	require.NoError(t, err, "indisponibilidade do SAL não pode impedir a emissão")

	assert.Equal(t, entity.MethodLocal, resp.Method)
	assert.True(t, resp.PendingValidation, "guia degradada fica pendente de validação")
	assert.False(t, resp.ValidatedByAuthority)
	assert.True(t, gps.Validate(resp.Barcode))
}

func TestEmit_CompetenciaVencidaVaiAoSAL(t *testing.T) {
	fx := newUsecaseFixture(t, false)

	// 09/2025 venceu em 15/10/2025, antes da referência 20/11/2025.
	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		PaymentCode: "1007",
		Competence:  "09/2025",
		Amount:      decimal.RequireFromString("303.60"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MethodAuthority, resp.Method)
	assert.Equal(t, 1, fx.authority.callCount())
}

func TestEmit_FalhaDePersistenciaAindaDevolveAGuia(t *testing.T) {
	fx := newUsecaseFixture(t, false)
	fx.emissions.createErr = errors.New("conexão com o banco perdida")

	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		PaymentCode: "1007",
		Competence:  "11/2025",
		Amount:      decimal.RequireFromString("303.60"),
	})
	require.NoError(t, err, "o contribuinte recebe a guia mesmo sem registro")
	assert.True(t, gps.Validate(resp.Barcode))
	assert.NotEmpty(t, resp.PDFBase64)
}

func TestEmit_EntradasInvalidas(t *testing.T) {
	fx := newUsecaseFixture(t, false)

	tests := []struct {
		name string
		req  dto.EmitGPSRequest
	}{
		{
			name: "competência malformada",
			req:  dto.EmitGPSRequest{PaymentCode: "1007", Competence: "2025-11", Amount: decimal.NewFromInt(100)},
		},
		{
			name: "competência futura",
			req:  dto.EmitGPSRequest{PaymentCode: "1007", Competence: "12/2025", Amount: decimal.NewFromInt(100)},
		},
		{
			name: "valor zerado",
			req:  dto.EmitGPSRequest{PaymentCode: "1007", Competence: "11/2025"},
		},
		{
			name: "sem código nem categoria",
			req:  dto.EmitGPSRequest{Competence: "11/2025", Amount: decimal.NewFromInt(100)},
		},
		{
			name: "método forçado desconhecido",
			req:  dto.EmitGPSRequest{PaymentCode: "1007", Competence: "11/2025", Amount: decimal.NewFromInt(100), ForcedMethod: "magico"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.uc.Emit(context.Background(), "user-1", tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetByID_EmissaoDeOutroUsuarioNaoVaza(t *testing.T) {
	fx := newUsecaseFixture(t, false)

	resp, err := fx.uc.Emit(context.Background(), "user-1", dto.EmitGPSRequest{
		PaymentCode: "1007",
		Competence:  "11/2025",
		Amount:      decimal.RequireFromString("303.60"),
	})
	require.NoError(t, err)

	_, err = fx.uc.GetByID(context.Background(), "user-2", resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := fx.uc.GetByID(context.Background(), "user-1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Barcode, got.Barcode)
}
