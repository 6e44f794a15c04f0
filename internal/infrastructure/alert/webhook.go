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

var _ emission.AlertChannel = (*WebhookChannel)(nil)

// WebhookChannel envia o alerta como JSON para um endpoint arbitrário
// (integrações de monitoramento, filas de incidente, etc.).
type WebhookChannel struct {
	url        string
	httpClient *http.Client
}

// NewWebhookChannel constrói o canal de webhook genérico.
func NewWebhookChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifica o canal nos logs e resultados.
func (c *WebhookChannel) Name() string { return "webhook" }

type webhookPayload struct {
	Event            string `json:"event"`
	EmissionID       string `json:"emission_id"`
	UserID           string `json:"user_id"`
	Competence       string `json:"competence"`
	Amount           string `json:"amount"`
	LocalBarcode     string `json:"local_barcode"`
	AuthorityBarcode string `json:"authority_barcode"`
	DetectedAt       string `json:"detected_at"`
}

// Notify envia o POST e exige resposta 2xx.
func (c *WebhookChannel) Notify(ctx context.Context, alert emission.DivergenceAlert) error {
	body, err := json.Marshal(webhookPayload{
		Event:            "gps.divergence",
		EmissionID:       alert.EmissionID,
		UserID:           alert.UserID,
		Competence:       alert.Competence,
		Amount:           alert.Amount.StringFixed(2),
		LocalBarcode:     alert.LocalBarcode,
		AuthorityBarcode: alert.AuthorityBarcode,
		DetectedAt:       alert.DetectedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("serializar payload do webhook: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("criar request do webhook: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("postar no webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook devolveu HTTP %d: %s", resp.StatusCode, raw)
	}
	return nil
}
