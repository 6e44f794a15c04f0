// Package alert implementa os canais de notificação de divergência
// (e-mail, Slack e webhook genérico).
package alert

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/gesielr/guiasMEIlast/internal/application/emission"
)

var _ emission.AlertChannel = (*EmailChannel)(nil)

// EmailChannel envia o alerta por SMTP para a equipe de operação.
type EmailChannel struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewEmailChannel constrói o canal de e-mail.
func NewEmailChannel(host string, port int, user, password, from, to string) *EmailChannel {
	return &EmailChannel{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		to:     to,
	}
}

// Name identifica o canal nos logs e resultados.
func (c *EmailChannel) Name() string { return "email" }

// Notify envia o alerta. gomail não aceita context; respeitamos o cancelamento
// verificando antes do envio e confiando no timeout do dialer.
func (c *EmailChannel) Notify(ctx context.Context, alert emission.DivergenceAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", c.to)
	m.SetHeader("Subject", fmt.Sprintf("[GPS] Divergência de código de barras - emissão %s", alert.EmissionID))
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Divergência detectada na conferência de GPS</h2>
		<p>A conferência em background encontrou um código de barras diferente do gerado localmente.</p>
		<table border="1" cellpadding="6" cellspacing="0">
			<tr><td><b>Emissão</b></td><td>%s</td></tr>
			<tr><td><b>Usuário</b></td><td>%s</td></tr>
			<tr><td><b>Competência</b></td><td>%s</td></tr>
			<tr><td><b>Valor</b></td><td>R$ %s</td></tr>
			<tr><td><b>Código local</b></td><td><code>%s</code></td></tr>
			<tr><td><b>Código SAL</b></td><td><code>%s</code></td></tr>
			<tr><td><b>Detectada em</b></td><td>%s</td></tr>
		</table>
		<p>Verifique o algoritmo de geração local antes de novas emissões desta faixa.</p>`,
		alert.EmissionID, alert.UserID, alert.Competence, alert.Amount.StringFixed(2),
		alert.LocalBarcode, alert.AuthorityBarcode, alert.DetectedAt.Format("02/01/2006 15:04:05"),
	))

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar e-mail de divergência: %w", err)
	}
	return nil
}
