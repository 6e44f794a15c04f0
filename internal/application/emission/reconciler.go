package emission

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/internal/domain/repository"
	"github.com/gesielr/guiasMEIlast/pkg/gps"
	"github.com/gesielr/guiasMEIlast/pkg/logger"
)

// ReconcileJob uma emissão local aguardando conferência no SAL.
// Carrega tudo por valor: o job não depende de reler a emissão do banco.
type ReconcileJob struct {
	EmissionID   string
	UserID       string
	TaxpayerID   string
	PaymentCode  string
	Competence   gps.Competence
	Amount       decimal.Decimal
	LocalBarcode string
}

// Reconciler confere em background emissões locais sorteadas contra o SAL.
// Fila limitada com workers fixos: se a fila encher, o job é descartado com
// log de aviso em vez de bloquear o caminho de emissão.
type Reconciler struct {
	authority   AuthorityClient
	emissions   repository.EmissionRepository
	divergences repository.DivergenceRepository
	dispatcher  *AlertDispatcher
	log         *logger.Logger

	queue   chan ReconcileJob
	wg      sync.WaitGroup
	stopped chan struct{}

	// jitter devolve o atraso antes de consultar o SAL. Injetável em teste;
	// o padrão sorteia entre 10 e 30 segundos para diluir a carga na ponte.
	jitter func() time.Duration
	// authorityTimeout limita cada consulta ao SAL.
	authorityTimeout time.Duration
}

const (
	jitterMin               = 10 * time.Second
	jitterSpan              = 20 * time.Second
	defaultAuthorityTimeout = 60 * time.Second
)

// NewReconciler cria o conciliador com fila de tamanho queueSize.
func NewReconciler(
	authority AuthorityClient,
	emissions repository.EmissionRepository,
	divergences repository.DivergenceRepository,
	dispatcher *AlertDispatcher,
	queueSize int,
	log *logger.Logger,
) *Reconciler {
	if queueSize <= 0 {
		queueSize = 128
	}
	return &Reconciler{
		authority:        authority,
		emissions:        emissions,
		divergences:      divergences,
		dispatcher:       dispatcher,
		log:              log,
		queue:            make(chan ReconcileJob, queueSize),
		stopped:          make(chan struct{}),
		jitter:           randomJitter,
		authorityTimeout: defaultAuthorityTimeout,
	}
}

func randomJitter() time.Duration {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(jitterSpan)))
	if err != nil {
		return jitterMin
	}
	return jitterMin + time.Duration(n.Int64())
}

// Start sobe os workers de conciliação.
func (r *Reconciler) Start(workers int) {
	if workers <= 0 {
		workers = 2
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	r.log.Info().Int("workers", workers).Int("fila", cap(r.queue)).Msg("conciliador de emissões iniciado")
}

// Enqueue agenda a conferência de uma emissão. Nunca bloqueia: com a fila
// cheia o job é descartado e registrado em log.
func (r *Reconciler) Enqueue(job ReconcileJob) {
	select {
	case r.queue <- job:
	default:
		r.log.Warn().
			Str("emissao_id", job.EmissionID).
			Msg("fila de conciliação cheia, conferência descartada")
	}
}

// Stop encerra os workers após drenar os jobs já enfileirados.
func (r *Reconciler) Stop() {
	close(r.queue)
	r.wg.Wait()
	close(r.stopped)
	r.log.Info().Msg("conciliador de emissões encerrado")
}

func (r *Reconciler) worker() {
	defer r.wg.Done()
	for job := range r.queue {
		r.reconcile(job)
	}
}

func (r *Reconciler) reconcile(job ReconcileJob) {
	if d := r.jitter(); d > 0 {
		time.Sleep(d)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.authorityTimeout)
	defer cancel()

	res, err := r.authority.Emit(ctx, AuthorityRequest{
		TaxpayerID:  job.TaxpayerID,
		PaymentCode: job.PaymentCode,
		Competence:  job.Competence,
		Amount:      job.Amount,
	})
	if err != nil {
		// SAL indisponível não é divergência: a emissão fica marcada como
		// pendente de validação e pode ser reconferida depois.
		r.log.Warn().
			Err(err).
			Str("emissao_id", job.EmissionID).
			Msg("SAL indisponível na conferência, emissão segue pendente de validação")
		return
	}

	if res.Barcode == job.LocalBarcode {
		if err := r.emissions.MarkValidated(ctx, job.EmissionID, time.Now()); err != nil {
			r.log.Error().Err(err).Str("emissao_id", job.EmissionID).Msg("falha ao marcar emissão como validada")
			return
		}
		r.log.Info().Str("emissao_id", job.EmissionID).Msg("emissão local conferida: código de barras idêntico ao SAL")
		return
	}

	r.handleDivergence(ctx, job, res.Barcode)
}

func (r *Reconciler) handleDivergence(ctx context.Context, job ReconcileJob, authorityBarcode string) {
	r.log.Error().
		Str("emissao_id", job.EmissionID).
		Str("barras_local", job.LocalBarcode).
		Str("barras_sal", authorityBarcode).
		Msg("DIVERGÊNCIA: código de barras local difere do SAL")

	div := &entity.Divergence{
		ID:               uuid.New().String(),
		EmissionID:       job.EmissionID,
		UserID:           job.UserID,
		Competence:       job.Competence.String(),
		Amount:           job.Amount,
		LocalBarcode:     job.LocalBarcode,
		AuthorityBarcode: authorityBarcode,
		Kind:             entity.DivergenceBarcodeMismatch,
		CreatedAt:        time.Now(),
	}

	created, err := r.divergences.CreateIfAbsent(ctx, div)
	if err != nil {
		r.log.Error().Err(err).Str("emissao_id", job.EmissionID).Msg("falha ao registrar divergência")
		return
	}
	if !created {
		// Reconferência de uma emissão já divergente: não alertamos de novo.
		return
	}

	r.dispatcher.Dispatch(ctx, DivergenceAlert{
		EmissionID:       job.EmissionID,
		UserID:           job.UserID,
		Competence:       job.Competence.String(),
		Amount:           job.Amount,
		LocalBarcode:     job.LocalBarcode,
		AuthorityBarcode: authorityBarcode,
		DetectedAt:       div.CreatedAt,
	})
}
