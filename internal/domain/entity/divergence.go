package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de divergência entre a guia local e a do SAL.
const (
	DivergenceBarcodeMismatch = "codigo_barras_diferente"
)

// Divergence registra lado a lado o código de barras gerado localmente e o
// devolvido pelo SAL quando a conferência em background detecta diferença.
// Criada no máximo uma vez por conciliação; só o campo Resolved muda depois,
// e apenas por ação externa.
type Divergence struct {
	ID               string
	EmissionID       string
	UserID           string
	Competence       string
	Amount           decimal.Decimal
	LocalBarcode     string
	AuthorityBarcode string
	Kind             string
	Resolved         bool
	CreatedAt        time.Time
}
