package emission

import (
	"context"
	"sync"
	"time"

	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

// ChannelResult resultado do envio de um alerta por um canal.
type ChannelResult struct {
	Channel string
	Err     error
}

// AlertDispatcher distribui alertas de divergência para todos os canais
// registrados, em paralelo. Canais são independentes: falha ou lentidão de
// um não atrasa nem impede os demais.
type AlertDispatcher struct {
	channels []AlertChannel
	timeout  time.Duration
	log      *logger.Logger
}

const defaultChannelTimeout = 10 * time.Second

// NewAlertDispatcher cria o dispatcher. timeout <= 0 usa o padrão de 10s por canal.
func NewAlertDispatcher(channels []AlertChannel, timeout time.Duration, log *logger.Logger) *AlertDispatcher {
	if timeout <= 0 {
		timeout = defaultChannelTimeout
	}
	return &AlertDispatcher{channels: channels, timeout: timeout, log: log}
}

// Dispatch envia o alerta a todos os canais e espera a conclusão de todos.
// Sempre devolve um resultado por canal, na ordem de registro.
func (d *AlertDispatcher) Dispatch(ctx context.Context, alert DivergenceAlert) []ChannelResult {
	if len(d.channels) == 0 {
		d.log.Warn().
			Str("emissao_id", alert.EmissionID).
			Msg("divergência detectada mas nenhum canal de alerta configurado")
		return nil
	}

	results := make([]ChannelResult, len(d.channels))
	var wg sync.WaitGroup
	for i, ch := range d.channels {
		wg.Add(1)
		go func(i int, ch AlertChannel) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()
			err := ch.Notify(cctx, alert)
			results[i] = ChannelResult{Channel: ch.Name(), Err: err}
			if err != nil {
				d.log.Error().
					Err(err).
					Str("canal", ch.Name()).
					Str("emissao_id", alert.EmissionID).
					Msg("falha ao enviar alerta de divergência")
			}
		}(i, ch)
	}
	wg.Wait()
	return results
}
