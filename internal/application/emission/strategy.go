package emission

import (
	"time"

	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/pkg/gps"
	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

// Strategy decide o método de emissão de cada guia.
//
// Ordem de precedência (contrato rígido, do mais forte para o mais fraco):
//
//	1. método forçado pelo chamador
//	2. competência anterior ao mês vigente força SAL, que calcula juros e multa
//	3. preferência do contribuinte por emissão oficial
//	4. sorteio de amostragem marca emissão local para conferência em background
//	5. padrão: emissão local
type Strategy struct {
	rate    float64
	sampler Sampler
	now     func() time.Time
	log     *logger.Logger
}

// NewStrategy cria a estratégia com a taxa de amostragem dada.
// Taxa fora de [0,1] cai no padrão de 1%.
func NewStrategy(rate float64, sampler Sampler, log *logger.Logger) *Strategy {
	if rate < 0 || rate > 1 {
		log.Warn().Float64("taxa", rate).Msg("taxa de amostragem inválida, usando padrão 1%")
		rate = 0.01
	}
	if sampler == nil {
		sampler = CryptoSampler{}
	}
	return &Strategy{rate: rate, sampler: sampler, now: time.Now, log: log}
}

// Decide devolve o método de emissão para os parâmetros dados.
func (s *Strategy) Decide(forced string, competence gps.Competence, preferAuthority bool) string {
	if forced != "" {
		return forced
	}
	if competence.Before(gps.CompetenceAt(s.now())) {
		// Competência de mês anterior: só o SAL calcula os acréscimos
		// legais corretamente, mesmo antes do dia 15 do mês seguinte.
		return entity.MethodAuthority
	}
	if preferAuthority {
		return entity.MethodAuthority
	}
	if s.sampler.Hit(s.rate) {
		return entity.MethodLocalValidated
	}
	return entity.MethodLocal
}
