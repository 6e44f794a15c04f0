package gps_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesielr/guiasMEIlast/pkg/gps"
)

// ──────────────────────────────────────────────────────────────────────────────
// Estes testes são o "canário na mina" do codec: o histórico do projeto
// carregou pelo menos três variantes incompatíveis do DV geral (resto == 1
// resultando ora em "1", ora em "0"). A regra adotada aqui está congelada nos
// vetores abaixo; qualquer mudança inadvertida de pesos, sentido de leitura ou
// tratamento do resto quebra estes testes imediatamente.
// ──────────────────────────────────────────────────────────────────────────────

// Corpo de 43 dígitos do vetor de referência (código completo sem o DV na posição 4).
const refBody43 = "8580000003036002701007000173176219552025113"

func TestGeneralCheckDigit_VetorDeReferencia(t *testing.T) {
	dv, err := gps.GeneralCheckDigit(refBody43)
	require.NoError(t, err)
	assert.Equal(t, 4, dv, "o DV geral do vetor de referência deve ser 4")
}

func TestGeneralCheckDigit_TamanhoErrado(t *testing.T) {
	_, err := gps.GeneralCheckDigit("123")
	assert.Error(t, err, "corpo com menos de 43 dígitos deve retornar erro")
}

func TestGeneralCheckDigit_CaractereInvalido(t *testing.T) {
	corpo := "858000000303600270100700017317621955202511X"
	_, err := gps.GeneralCheckDigit(corpo)
	assert.Error(t, err, "corpo com caractere não numérico deve retornar erro")
}

func TestBlockCheckDigitMod10_Vetores(t *testing.T) {
	// Blocos extraídos de um código com indicador 7 (linha módulo 10).
	casos := []struct {
		bloco string
		dv    int
	}{
		{"85730000000", 0},
		{"75900270192", 9},
		{"90001642731", 3},
		{"76212026013", 3},
	}
	for _, c := range casos {
		dv, err := gps.BlockCheckDigitMod10(c.bloco)
		require.NoError(t, err, "bloco %s", c.bloco)
		assert.Equal(t, c.dv, dv, "DV módulo 10 do bloco %s", c.bloco)
	}
}

func TestBlockCheckDigitMod11_Vetores(t *testing.T) {
	// Blocos do código de referência (indicador 8 → linha módulo 11).
	casos := []struct {
		bloco string
		dv    int
	}{
		{"85840000003", 5},
		{"03600270100", 7},
		{"70001731762", 7},
		{"19552025113", 2},
	}
	for _, c := range casos {
		dv, err := gps.BlockCheckDigitMod11(c.bloco)
		require.NoError(t, err, "bloco %s", c.bloco)
		assert.Equal(t, c.dv, dv, "DV módulo 11 do bloco %s", c.bloco)
	}
}

func TestBlockCheckDigit_TamanhoErrado(t *testing.T) {
	_, err10 := gps.BlockCheckDigitMod10("123")
	_, err11 := gps.BlockCheckDigitMod11("123456789012")
	assert.Error(t, err10)
	assert.Error(t, err11)
}

// TestBlockCheckDigitMod11_RestoZeroOuUm garante o caso de borda do módulo 11
// de bloco: resto 0 ou 1 resulta em DV 0 (diferente do DV geral, onde vira 1).
func TestBlockCheckDigitMod11_RestoZeroOuUm(t *testing.T) {
	// "00000000000" → soma 0 → resto 0 → DV 0
	dv, err := gps.BlockCheckDigitMod11("00000000000")
	require.NoError(t, err)
	assert.Equal(t, 0, dv)
}
