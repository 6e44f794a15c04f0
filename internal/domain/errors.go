package domain

import "errors"

// Erros de domínio (sem dependências externas). Apenas entrada malformada
// chega ao chamador HTTP como falha; problemas de integração (SAL, banco,
// canais de alerta) degradam com log e nunca viram erro para o usuário.
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrEmailAlreadyExists = errors.New("e-mail já cadastrado")

	// ErrAuthorityUnavailable indica falha de rede ou timeout falando com o
	// SAL. Sempre recuperada localmente: a guia fica com validação pendente.
	ErrAuthorityUnavailable = errors.New("SAL indisponível")

	// ErrPersistence indica falha ao gravar no banco. Recuperada onde for
	// possível devolvendo um id gerado, para que o chamador ainda receba uma
	// emissão utilizável.
	ErrPersistence = errors.New("falha de persistência")
)
