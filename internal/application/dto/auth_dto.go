package dto

// RegisterRequest cadastro de contribuinte.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	CPF      string `json:"cpf"`
	NIT      string `json:"nit,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	UF       string `json:"uf,omitempty"`
	// PreferAuthority: emitir sempre pelo SAL em vez da geração local.
	PreferAuthority bool `json:"prefer_authority,omitempty"`
}

// LoginRequest autenticação.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido.
type LoginResponse struct {
	Token string       `json:"token"`
	User  ProfileBrief `json:"user"`
}

// ProfileBrief resumo do perfil devolvido no login.
type ProfileBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	NIT   string `json:"nit,omitempty"`
}
