package emission

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gesielr/guiasMEIlast/pkg/gps"
)

// AuthorityClient é a porta para o sistema oficial SAL (Sistema de Acréscimos Legais).
// A implementação real fala SOAP com a ponte do SAL; em dev usa um simulador.
type AuthorityClient interface {
	// Emit solicita ao SAL a emissão oficial da guia e devolve o código de
	// barras calculado pela autoridade. Deve respeitar o deadline do contexto.
	Emit(ctx context.Context, req AuthorityRequest) (*AuthorityResult, error)
}

// AuthorityRequest parâmetros da emissão junto ao SAL.
type AuthorityRequest struct {
	TaxpayerID  string
	PaymentCode string
	Competence  gps.Competence
	Amount      decimal.Decimal
}

// AuthorityResult resposta do SAL.
type AuthorityResult struct {
	Barcode         string
	DigitizableLine string
	DueDate         time.Time
}

// GuideDocument dados que o renderizador precisa para montar o PDF da guia.
type GuideDocument struct {
	TaxpayerName    string
	TaxpayerID      string
	Address         string
	Phone           string
	PaymentCode     string
	CodeDescription string
	Competence      gps.Competence
	DueDate         time.Time
	Amount          decimal.Decimal
	Barcode         string
	DigitizableLine string
}

// Renderer gera o PDF da guia de pagamento.
type Renderer interface {
	Render(doc GuideDocument) ([]byte, error)
}

// AlertChannel é um destino de notificação de divergência (e-mail, Slack, webhook).
// Cada canal é independente: a falha de um não impede os demais.
type AlertChannel interface {
	Name() string
	Notify(ctx context.Context, alert DivergenceAlert) error
}

// DivergenceAlert payload enviado aos canais quando a conferência no SAL
// encontra um código de barras diferente do gerado localmente.
type DivergenceAlert struct {
	EmissionID       string
	UserID           string
	Competence       string
	Amount           decimal.Decimal
	LocalBarcode     string
	AuthorityBarcode string
	DetectedAt       time.Time
}

// Sampler decide se uma emissão local entra na amostra de conferência.
// Injetável para tornar o sorteio determinístico em teste.
type Sampler interface {
	// Hit devolve true com probabilidade rate (fração em [0,1]).
	Hit(rate float64) bool
}
