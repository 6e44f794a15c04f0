package emission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

func TestAlertDispatcher_TodosOsCanaisRecebem(t *testing.T) {
	email := &recordingChannel{name: "email"}
	slack := &recordingChannel{name: "slack"}
	webhook := &recordingChannel{name: "webhook"}

	d := NewAlertDispatcher([]AlertChannel{email, slack, webhook}, time.Second, logger.NewNop())
	results := d.Dispatch(context.Background(), DivergenceAlert{EmissionID: "em-1"})

	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.Err, "canal %s", r.Channel)
	}
	assert.Equal(t, 1, email.received())
	assert.Equal(t, 1, slack.received())
	assert.Equal(t, 1, webhook.received())
}

func TestAlertDispatcher_FalhaDeUmCanalNaoImpedeOsDemais(t *testing.T) {
	broken := &recordingChannel{name: "email", err: errors.New("smtp recusou conexão")}
	ok := &recordingChannel{name: "slack"}

	d := NewAlertDispatcher([]AlertChannel{broken, ok}, time.Second, logger.NewNop())
	results := d.Dispatch(context.Background(), DivergenceAlert{EmissionID: "em-2"})

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.Equal(t, "email", results[0].Channel)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, ok.received(), "canal saudável deve entregar mesmo com outro falhando")
}

func TestAlertDispatcher_CanalLentoEstouraOTimeout(t *testing.T) {
	slow := &recordingChannel{name: "webhook", delay: 500 * time.Millisecond}

	d := NewAlertDispatcher([]AlertChannel{slow}, 20*time.Millisecond, logger.NewNop())
	start := time.Now()
	results := d.Dispatch(context.Background(), DivergenceAlert{EmissionID: "em-3"})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 400*time.Millisecond, "timeout por canal deve cortar o envio lento")
}

func TestAlertDispatcher_SemCanaisApenasRegistraAviso(t *testing.T) {
	d := NewAlertDispatcher(nil, time.Second, logger.NewNop())
	results := d.Dispatch(context.Background(), DivergenceAlert{EmissionID: "em-4"})
	assert.Nil(t, results)
}
