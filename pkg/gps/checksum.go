// Package gps implementa o código de barras da GPS (Guia da Previdência Social)
// no padrão de arrecadação FEBRABAN: 44 dígitos posicionais, DV geral módulo 11
// e linha digitável em 4 blocos com DV próprio por bloco.
//
// Os dois algoritmos de DV de bloco são mutuamente exclusivos: o indicador de
// valor (3º dígito do código) seleciona módulo 10 (indicadores 6 e 7) ou
// módulo 11 (indicadores 8 e 9). Nunca o valor ou o NIT diretamente.
package gps

import "fmt"

// GeneralCheckDigit calcula o DV geral do código de barras sobre o corpo de
// 43 dígitos (código completo sem a posição 4). Pesos cíclicos 2..9 aplicados
// da direita para a esquerda; resto = soma mod 11; DV = 11 - resto.
// Quando o resultado é 10 ou 11, o DV é 1, não 0.
func GeneralCheckDigit(body43 string) (int, error) {
	if len(body43) != 43 {
		return 0, fmt.Errorf("gps: corpo do DV geral deve ter 43 dígitos, tem %d", len(body43))
	}
	sum, err := weightedSum2to9(body43)
	if err != nil {
		return 0, err
	}
	dv := 11 - sum%11
	if dv >= 10 {
		return 1, nil
	}
	return dv, nil
}

// BlockCheckDigitMod10 calcula o DV de um bloco de 11 dígitos da linha
// digitável pelo módulo 10 clássico: pesos alternados 2 e 1 da direita para a
// esquerda, produtos de dois dígitos somados algarismo a algarismo.
// Usado quando o indicador de valor é 6 ou 7.
func BlockCheckDigitMod10(block11 string) (int, error) {
	if len(block11) != 11 {
		return 0, fmt.Errorf("gps: bloco da linha digitável deve ter 11 dígitos, tem %d", len(block11))
	}
	sum := 0
	weight := 2
	for i := len(block11) - 1; i >= 0; i-- {
		d, ok := digitValue(block11[i])
		if !ok {
			return 0, fmt.Errorf("gps: bloco contém caractere não numérico %q", block11[i])
		}
		p := d * weight
		if p > 9 {
			p = p/10 + p%10
		}
		sum += p
		if weight == 2 {
			weight = 1
		} else {
			weight = 2
		}
	}
	return (10 - sum%10) % 10, nil
}

// BlockCheckDigitMod11 calcula o DV de um bloco de 11 dígitos pelo módulo 11:
// pesos cíclicos 2..9 da direita para a esquerda; resto 0 ou 1 resulta em
// DV 0, caso contrário DV = 11 - resto. Usado quando o indicador de valor é 8 ou 9.
func BlockCheckDigitMod11(block11 string) (int, error) {
	if len(block11) != 11 {
		return 0, fmt.Errorf("gps: bloco da linha digitável deve ter 11 dígitos, tem %d", len(block11))
	}
	sum, err := weightedSum2to9(block11)
	if err != nil {
		return 0, err
	}
	rem := sum % 11
	if rem == 0 || rem == 1 {
		return 0, nil
	}
	return 11 - rem, nil
}

// weightedSum2to9 soma os dígitos multiplicados pelos pesos cíclicos 2..9,
// aplicados da direita para a esquerda.
func weightedSum2to9(digits string) (int, error) {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		d, ok := digitValue(digits[i])
		if !ok {
			return 0, fmt.Errorf("gps: caractere não numérico %q na posição %d", digits[i], i)
		}
		sum += d * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	return sum, nil
}

func digitValue(b byte) (int, bool) {
	if b < '0' || b > '9' {
		return 0, false
	}
	return int(b - '0'), true
}
