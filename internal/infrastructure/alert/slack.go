package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gesielr/guiasMEIlast/internal/application/emission"
)

var _ emission.AlertChannel = (*SlackChannel)(nil)

// SlackChannel publica o alerta num canal do Slack via incoming webhook.
type SlackChannel struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackChannel constrói o canal do Slack.
func NewSlackChannel(webhookURL string) *SlackChannel {
	return &SlackChannel{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifica o canal nos logs e resultados.
func (c *SlackChannel) Name() string { return "slack" }

// Notify publica a mensagem formatada em blocos.
func (c *SlackChannel) Notify(ctx context.Context, alert emission.DivergenceAlert) error {
	payload := map[string]any{
		"text": fmt.Sprintf(":rotating_light: Divergência de GPS na emissão %s", alert.EmissionID),
		"blocks": []map[string]any{
			{
				"type": "header",
				"text": map[string]any{
					"type": "plain_text",
					"text": "Divergência de código de barras GPS",
				},
			},
			{
				"type": "section",
				"fields": []map[string]any{
					{"type": "mrkdwn", "text": "*Emissão:*\n" + alert.EmissionID},
					{"type": "mrkdwn", "text": "*Competência:*\n" + alert.Competence},
					{"type": "mrkdwn", "text": "*Valor:*\nR$ " + alert.Amount.StringFixed(2)},
					{"type": "mrkdwn", "text": "*Detectada em:*\n" + alert.DetectedAt.Format("02/01/2006 15:04")},
				},
			},
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Local:* `%s`\n*SAL:* `%s`", alert.LocalBarcode, alert.AuthorityBarcode),
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar payload do Slack: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("criar request do Slack: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("postar no Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("Slack devolveu HTTP %d: %s", resp.StatusCode, raw)
	}
	return nil
}
