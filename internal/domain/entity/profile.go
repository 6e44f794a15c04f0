package entity

import "time"

// Profile é o cadastro do contribuinte: credenciais de acesso e os dados
// fiscais que entram na GPS (NIT/PIS/PASEP, CPF, endereço).
type Profile struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CPF          string // 11 dígitos, sem formatação
	NIT          string // NIT/PIS/PASEP, 11 dígitos, sem formatação
	Address      string
	Phone        string
	UF           string
	// PreferAuthority indica preferência permanente por emissão via SAL
	// (pesa na decisão de método, abaixo de guia vencida).
	PreferAuthority bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
