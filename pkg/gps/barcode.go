package gps

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Erros do codec. ErrInvalidField cobre entradas malformadas no Encode;
// ErrMalformedBarcode cobre códigos que não têm 44 dígitos numéricos no Decode.
var (
	ErrInvalidField     = errors.New("gps: campo inválido")
	ErrMalformedBarcode = errors.New("gps: código de barras malformado")
)

// Layout posicional do código de barras GPS (44 dígitos):
//
//	pos 1      produto ("8" = arrecadação)
//	pos 2      segmento ("5" = órgãos governamentais)
//	pos 3      indicador de valor (6–9, pela ordem de grandeza do valor)
//	pos 4      DV geral (módulo 11 sobre os outros 43 dígitos)
//	pos 5–15   valor em centavos, 11 dígitos
//	pos 16–19  campo fixo GPS "0270"
//	pos 20–23  código de pagamento, 4 dígitos
//	pos 24–27  campo fixo GPS "0001"
//	pos 28–37  NIT/PIS/PASEP normalizado para 10 dígitos
//	pos 38–44  competência: YYYY + MM + dígito fixo "3"
const (
	productDigit     = "8"
	segmentDigit     = "5"
	fixedFieldGPS    = "0270"
	fixedFieldSeq    = "0001"
	competenceSuffix = "3"

	// BarcodeLength é o tamanho do código de barras completo.
	BarcodeLength = 44
)

// Fields são os campos lógicos necessários para montar um código de barras GPS.
type Fields struct {
	PaymentCode string     // código de pagamento, 1–4 dígitos (ex: "1007")
	Competence  Competence // competência MM/YYYY
	AmountCents int64      // valor em centavos; deve ser > 0
	TaxpayerID  string     // NIT/PIS/PASEP; 11 dígitos típicos, normalizado para 10 no código
}

// Encode monta o código de barras de 44 dígitos a partir dos campos.
// Retorna ErrInvalidField (embrulhado) para valor <= 0, NIT com caracteres não
// numéricos, código de pagamento inválido ou competência não preenchida.
func Encode(f Fields) (string, error) {
	if f.AmountCents <= 0 {
		return "", fmt.Errorf("%w: valor deve ser maior que zero (recebido %d centavos)", ErrInvalidField, f.AmountCents)
	}
	if f.AmountCents > 99999999999 {
		return "", fmt.Errorf("%w: valor excede 11 dígitos em centavos", ErrInvalidField)
	}
	payCode, err := normalizePaymentCode(f.PaymentCode)
	if err != nil {
		return "", err
	}
	nit10, err := NormalizeTaxpayerID(f.TaxpayerID)
	if err != nil {
		return "", err
	}
	if f.Competence.Month < 1 || f.Competence.Month > 12 || f.Competence.Year < 1000 || f.Competence.Year > 9999 {
		return "", fmt.Errorf("%w: competência %q fora do intervalo", ErrInvalidField, f.Competence)
	}

	amount := fmt.Sprintf("%011d", f.AmountCents)
	competence := fmt.Sprintf("%04d%02d%s", f.Competence.Year, f.Competence.Month, competenceSuffix)

	body := productDigit + segmentDigit + valueIndicator(f.AmountCents) +
		amount + fixedFieldGPS + payCode + fixedFieldSeq + nit10 + competence

	dv, err := GeneralCheckDigit(body)
	if err != nil {
		return "", err
	}
	return body[:3] + strconv.Itoa(dv) + body[3:], nil
}

// Decode extrai os campos lógicos de um código de barras de 44 dígitos.
// É a inversa posicional do Encode, módulo a regra de normalização do NIT
// (o código carrega só os 10 dígitos finais).
func Decode(code string) (Fields, error) {
	if err := checkShape(code); err != nil {
		return Fields{}, err
	}
	cents, err := strconv.ParseInt(code[4:15], 10, 64)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: valor não numérico", ErrMalformedBarcode)
	}
	year, _ := strconv.Atoi(code[37:41])
	month, _ := strconv.Atoi(code[41:43])
	if month < 1 || month > 12 {
		return Fields{}, fmt.Errorf("%w: mês %d fora de 1–12", ErrMalformedBarcode, month)
	}
	return Fields{
		PaymentCode: code[19:23],
		Competence:  Competence{Month: month, Year: year},
		AmountCents: cents,
		TaxpayerID:  code[27:37],
	}, nil
}

// Validate recalcula o DV geral a partir dos 43 dígitos restantes e compara
// com a posição 4. Qualquer defeito de formato retorna false, nunca erro.
func Validate(code string) bool {
	if checkShape(code) != nil {
		return false
	}
	dv, err := GeneralCheckDigit(code[:3] + code[4:])
	if err != nil {
		return false
	}
	return byte('0'+dv) == code[3]
}

// DigitizableLine deriva a linha digitável: 4 blocos de 11 dígitos, cada um
// com seu DV anexado após hífen, separados por espaço. O algoritmo do DV de
// bloco é escolhido uma única vez pelo indicador de valor do código.
func DigitizableLine(code string) (string, error) {
	if err := checkShape(code); err != nil {
		return "", err
	}
	blockDV := BlockCheckDigitMod10
	if ind := code[2]; ind == '8' || ind == '9' {
		blockDV = BlockCheckDigitMod11
	}

	var b strings.Builder
	for i := 0; i < BarcodeLength; i += 11 {
		block := code[i : i+11]
		dv, err := blockDV(block)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(block)
		b.WriteByte('-')
		b.WriteByte(byte('0' + dv))
	}
	return b.String(), nil
}

// NormalizeTaxpayerID normaliza o NIT/PIS/PASEP para os 10 dígitos usados no
// código de barras: com 11 ou mais dígitos descarta o primeiro; com menos de
// 10 completa com zeros à esquerda. Caracteres não numéricos são rejeitados.
func NormalizeTaxpayerID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: NIT/PIS/PASEP vazio", ErrInvalidField)
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return "", fmt.Errorf("%w: NIT/PIS/PASEP contém caractere não numérico %q", ErrInvalidField, id[i])
		}
	}
	if len(id) >= 11 {
		return id[1:11], nil
	}
	if len(id) < 10 {
		return strings.Repeat("0", 10-len(id)) + id, nil
	}
	return id, nil
}

// valueIndicator deriva o indicador de valor (posição 3) pela ordem de
// grandeza do valor em centavos. O indicador também seleciona o algoritmo de
// DV da linha digitável.
func valueIndicator(cents int64) string {
	switch {
	case cents < 1_000:
		return "6"
	case cents < 10_000:
		return "7"
	case cents < 100_000:
		return "8"
	default:
		return "9"
	}
}

func normalizePaymentCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > 4 {
		return "", fmt.Errorf("%w: código de pagamento deve ter 1 a 4 dígitos", ErrInvalidField)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", fmt.Errorf("%w: código de pagamento contém caractere não numérico %q", ErrInvalidField, code[i])
		}
	}
	return strings.Repeat("0", 4-len(code)) + code, nil
}

func checkShape(code string) error {
	if len(code) != BarcodeLength {
		return fmt.Errorf("%w: esperados %d dígitos, recebidos %d", ErrMalformedBarcode, BarcodeLength, len(code))
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return fmt.Errorf("%w: caractere não numérico %q na posição %d", ErrMalformedBarcode, code[i], i+1)
		}
	}
	return nil
}
