package service

import "errors"

// Domain errors mapped to HTTP statuses in the handlers.
var (
	ErrPlacaInvalida           = errors.New("placa inválida")
	ErrClassificacaoAmbigua    = errors.New("sessão não pode ser mensalista e diarista ao mesmo tempo")
	ErrMensalistaSemNome       = errors.New("nome do cliente é obrigatório para mensalista")
	ErrSessaoDuplicada         = errors.New("já existe uma sessão ativa para esta placa")
	ErrTicketDuplicado         = errors.New("ticket_id já utilizado")
	ErrPatioLotado             = errors.New("pátio lotado")
	ErrIdentificadorAusente    = errors.New("informe ticket_id ou placa")
	ErrSessaoNaoEncontrada     = errors.New("sessão ativa não encontrada")
	ErrMensalistaNaoEncontrado = errors.New("mensalista não encontrado")
	ErrMensalistaInativo       = errors.New("mensalista está inativo")
	ErrFechamentoExistente     = errors.New("já existe fechamento para esta data")
	ErrObservacaoObrigatoria   = errors.New("observação é obrigatória ao substituir um fechamento")
	ErrTurnoAberto             = errors.New("já existe um turno aberto")
	ErrTurnoNaoEncontrado      = errors.New("turno não encontrado")
	ErrTurnoJaFechado          = errors.New("turno já está fechado")
	ErrConfiguracaoInvalida    = errors.New("valor de configuração inválido")
)
