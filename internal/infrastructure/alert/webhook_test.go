package alert

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesielr/guiasMEIlast/internal/application/emission"
)

func sampleAlert() emission.DivergenceAlert {
	return emission.DivergenceAlert{
		EmissionID:       "em-1",
		UserID:           "user-1",
		Competence:       "11/2025",
		Amount:           decimal.RequireFromString("303.60"),
		LocalBarcode:     "85840000003036002701007000173176219552025113",
		AuthorityBarcode: "85840000009996002701007000173176219552025113",
		DetectedAt:       time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestWebhookChannel_EnviaPayloadCompleto(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewWebhookChannel(srv.URL)
	require.NoError(t, c.Notify(context.Background(), sampleAlert()))

	assert.Equal(t, "gps.divergence", got.Event)
	assert.Equal(t, "em-1", got.EmissionID)
	assert.Equal(t, "303.60", got.Amount)
	assert.Equal(t, "85840000003036002701007000173176219552025113", got.LocalBarcode)
}

func TestWebhookChannel_ErroHTTPViraErro(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWebhookChannel(srv.URL)
	err := c.Notify(context.Background(), sampleAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestSlackChannel_PostaBlocos(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewSlackChannel(srv.URL)
	require.NoError(t, c.Notify(context.Background(), sampleAlert()))

	assert.Contains(t, payload["text"], "em-1")
	assert.NotEmpty(t, payload["blocks"])
}

func TestChannels_RespeitamCancelamento(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, NewWebhookChannel(srv.URL).Notify(ctx, sampleAlert()))
	assert.Error(t, NewSlackChannel(srv.URL).Notify(ctx, sampleAlert()))
}
