package emission

import (
	"crypto/rand"
	"math/big"
)

// CryptoSampler sorteia via crypto/rand: sem estado, sem semente, sem viés
// entre processos. Resolução de 1/10000 (0.01%).
type CryptoSampler struct{}

const samplerResolution = 10000

// Hit devolve true com probabilidade rate.
func (CryptoSampler) Hit(rate float64) bool {
	if rate <= 0 {
		return false
	}
	if rate >= 1 {
		return true
	}
	n, err := rand.Int(rand.Reader, big.NewInt(samplerResolution))
	if err != nil {
		// Sem entropia disponível, não amostramos; a emissão segue local.
		return false
	}
	return n.Int64() < int64(rate*samplerResolution)
}
