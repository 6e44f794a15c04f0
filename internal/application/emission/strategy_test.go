package emission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/pkg/gps"
	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

// ─────────────────────────────────────────────────────────────────────────────
// Precedência da decisão de método: forçado > mês anterior > preferência >
// sorteio > local.
// ─────────────────────────────────────────────────────────────────────────────

// Referência fixa: 20/11/2025. Competência 10/2025 é de mês anterior.
var strategyNow = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

func newTestStrategy(rate float64, sampler Sampler) *Strategy {
	s := NewStrategy(rate, sampler, logger.NewNop())
	s.now = func() time.Time { return strategyNow }
	return s
}

func TestStrategy_Precedencia(t *testing.T) {
	current := gps.Competence{Month: 11, Year: 2025} // mês vigente
	overdue := gps.Competence{Month: 10, Year: 2025} // mês anterior

	tests := []struct {
		name            string
		forced          string
		competence      gps.Competence
		preferAuthority bool
		samplerHit      bool
		want            string
	}{
		{
			name:       "padrão é emissão local",
			competence: current,
			want:       entity.MethodLocal,
		},
		{
			name:       "sorteio marca para conferência",
			competence: current,
			samplerHit: true,
			want:       entity.MethodLocalValidated,
		},
		{
			name:            "preferência do contribuinte vence o sorteio",
			competence:      current,
			preferAuthority: true,
			samplerHit:      true,
			want:            entity.MethodAuthority,
		},
		{
			name:       "competência vencida força o SAL",
			competence: overdue,
			want:       entity.MethodAuthority,
		},
		{
			name:       "forçado vence até competência vencida",
			forced:     entity.MethodLocal,
			competence: overdue,
			want:       entity.MethodLocal,
		},
		{
			name:            "forçado vence a preferência",
			forced:          entity.MethodLocalValidated,
			competence:      current,
			preferAuthority: true,
			want:            entity.MethodLocalValidated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStrategy(0.01, fakeSampler{hit: tt.samplerHit})
			got := s.Decide(tt.forced, tt.competence, tt.preferAuthority)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrategy_CompetenciaDoMesVigenteNaoEVencida(t *testing.T) {
	// 11/2025 é o mês da referência 20/11/2025; ainda não está em atraso.
	s := newTestStrategy(0, fakeSampler{})
	got := s.Decide("", gps.Competence{Month: 11, Year: 2025}, false)
	assert.Equal(t, entity.MethodLocal, got, "competência do mês vigente não deve ir ao SAL")
}

func TestStrategy_MesAnteriorVaiAoSALAntesDoDia15(t *testing.T) {
	// Em 10/11/2025 a competência 10/2025 ainda não atingiu o vencimento
	// (15/11), mas já é de mês fechado: o SAL assume desde o dia 1.
	s := NewStrategy(0, fakeSampler{}, logger.NewNop())
	s.now = func() time.Time { return time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC) }

	got := s.Decide("", gps.Competence{Month: 10, Year: 2025}, false)
	assert.Equal(t, entity.MethodAuthority, got)
}

func TestNewStrategy_TaxaInvalidaCaiNoPadrao(t *testing.T) {
	s := NewStrategy(1.5, fakeSampler{}, logger.NewNop())
	assert.InDelta(t, 0.01, s.rate, 1e-9)

	s = NewStrategy(-0.2, fakeSampler{}, logger.NewNop())
	assert.InDelta(t, 0.01, s.rate, 1e-9)
}

func TestCryptoSampler_Extremos(t *testing.T) {
	var s CryptoSampler
	assert.False(t, s.Hit(0), "taxa 0 nunca sorteia")
	assert.True(t, s.Hit(1), "taxa 1 sempre sorteia")

	// Taxa 0.5 em muitas tentativas deve produzir ambos os resultados.
	var hits int
	for i := 0; i < 200; i++ {
		if s.Hit(0.5) {
			hits++
		}
	}
	assert.Greater(t, hits, 0)
	assert.Less(t, hits, 200)
}
