package service

import (
	"context"
	"testing"
	"time"

	"estapark/internal/dto"
	"estapark/internal/model"
	"estapark/internal/pagamento"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mensalistaFixture struct {
	svc   MensalistaService
	repo  *stubMensalistaRepo
	caixa *stubCaixaRepo
}

func newMensalistaFixture() *mensalistaFixture {
	f := &mensalistaFixture{
		repo:  &stubMensalistaRepo{},
		caixa: &stubCaixaRepo{},
	}
	f.svc = NewMensalistaService(f.repo, f.caixa, newStubConfig(), nil, time.UTC)
	return f
}

func (f *mensalistaFixture) conta(placa, nome string, vencimento *time.Time, ativo bool) *model.Mensalista {
	m := &model.Mensalista{
		ID:         uuid.New(),
		Placa:      placa,
		Nome:       nome,
		Vencimento: vencimento,
		Ativo:      ativo,
	}
	f.repo.mensalistas = append(f.repo.mensalistas, m)
	return m
}

func diasAPartirDeHoje(dias int) time.Time {
	agora := time.Now().UTC()
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.UTC)
	return hoje.AddDate(0, 0, dias)
}

func pagamentoMensal(valor float64) []dto.AlocacaoPagamento {
	return []dto.AlocacaoPagamento{{Forma: "pix", Valor: decimal.NewFromFloat(valor)}}
}

// ── Upsert ───────────────────────────────────────────────────────────────────

func TestMensalistaUpsert_Cria(t *testing.T) {
	f := newMensalistaFixture()

	resp, err := f.svc.Upsert(context.Background(), dto.MensalistaRequest{
		Placa: "abc-1234",
		Nome:  "Maria Souza",
		Email: "maria@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC1234", resp.Placa)
	assert.Equal(t, "Maria Souza", resp.Nome)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "maria@example.com", *resp.Email)
	assert.True(t, resp.Ativo)
}

func TestMensalistaUpsert_AtualizaSemApagarCampos(t *testing.T) {
	f := newMensalistaFixture()
	telefone := "11 99999-0000"
	f.repo.mensalistas = append(f.repo.mensalistas, &model.Mensalista{
		ID: uuid.New(), Placa: "ABC1234", Nome: "Maria Souza", Telefone: &telefone, Ativo: false,
	})

	resp, err := f.svc.Upsert(context.Background(), dto.MensalistaRequest{
		Placa: "ABC1234",
		Nome:  "Maria S. Lima",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria S. Lima", resp.Nome)
	require.NotNil(t, resp.Telefone, "empty request fields keep stored values")
	assert.Equal(t, telefone, *resp.Telefone)
	assert.True(t, resp.Ativo, "upsert reactivates the account")
}

func TestMensalistaUpsert_NaoRegrideVencimento(t *testing.T) {
	// A re-cadastro with an older date must not erase time already paid.
	f := newMensalistaFixture()
	venc := diasAPartirDeHoje(30)
	f.conta("ABC1234", "Maria Souza", &venc, true)

	resp, err := f.svc.Upsert(context.Background(), dto.MensalistaRequest{
		Placa:      "ABC1234",
		Nome:       "Maria Souza",
		Vencimento: diasAPartirDeHoje(-10).Format("2006-01-02"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Vencimento)
	assert.Equal(t, venc.Format("2006-01-02"), *resp.Vencimento)
}

func TestMensalistaUpsert_AvancaVencimento(t *testing.T) {
	f := newMensalistaFixture()
	venc := diasAPartirDeHoje(5)
	f.conta("ABC1234", "Maria Souza", &venc, true)

	nova := diasAPartirDeHoje(40)
	resp, err := f.svc.Upsert(context.Background(), dto.MensalistaRequest{
		Placa:      "ABC1234",
		Nome:       "Maria Souza",
		Vencimento: nova.Format("2006-01-02"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Vencimento)
	assert.Equal(t, nova.Format("2006-01-02"), *resp.Vencimento)
}

func TestMensalistaUpsert_PlacaInvalida(t *testing.T) {
	f := newMensalistaFixture()

	_, err := f.svc.Upsert(context.Background(), dto.MensalistaRequest{Placa: "ZZ-1", Nome: "Maria"})
	assert.ErrorIs(t, err, ErrPlacaInvalida)
}

// ── Pagamento ────────────────────────────────────────────────────────────────

func TestPagamento_VencimentoFuturoEstende(t *testing.T) {
	// Paying early stacks on top of the current due date.
	f := newMensalistaFixture()
	venc := diasAPartirDeHoje(10)
	m := f.conta("ABC1234", "Maria Souza", &venc, true)

	resp, err := f.svc.RegistrarPagamento(context.Background(), dto.PagamentoMensalistaRequest{
		MensalistaID: m.ID.String(),
		Meses:        1,
		Pagamentos:   pagamentoMensal(300),
	})
	require.NoError(t, err)

	assert.Equal(t, venc.AddDate(0, 1, 0).Format("2006-01-02"), resp.NovoVencimento)
	assert.True(t, resp.TotalPago.Equal(decimal.NewFromFloat(300)))
}

func TestPagamento_VencidoReiniciaDeHoje(t *testing.T) {
	// An expired account restarts from today, not from the old due date.
	f := newMensalistaFixture()
	venc := diasAPartirDeHoje(-40)
	m := f.conta("ABC1234", "Maria Souza", &venc, true)

	resp, err := f.svc.RegistrarPagamento(context.Background(), dto.PagamentoMensalistaRequest{
		MensalistaID: m.ID.String(),
		Meses:        2,
		Pagamentos:   pagamentoMensal(600),
	})
	require.NoError(t, err)

	assert.Equal(t, diasAPartirDeHoje(0).AddDate(0, 2, 0).Format("2006-01-02"), resp.NovoVencimento)
}

func TestPagamento_GeraMovimentoNoCaixa(t *testing.T) {
	f := newMensalistaFixture()
	m := f.conta("ABC1234", "Maria Souza", nil, true)

	_, err := f.svc.RegistrarPagamento(context.Background(), dto.PagamentoMensalistaRequest{
		MensalistaID: m.ID.String(),
		Meses:        1,
		Pagamentos: []dto.AlocacaoPagamento{
			{Forma: "dinheiro", Valor: decimal.NewFromFloat(100)},
			{Forma: "pix", Valor: decimal.NewFromFloat(200)},
		},
	})
	require.NoError(t, err)

	require.Len(t, f.caixa.movimentos, 2)
	for _, mov := range f.caixa.movimentos {
		assert.Equal(t, model.OrigemPagamentoMensalista, mov.Origem)
		require.NotNil(t, mov.MensalistaID)
		assert.Equal(t, m.ID, *mov.MensalistaID)
		assert.Equal(t, "ABC1234", mov.Placa)
	}
}

func TestPagamento_PorPlaca(t *testing.T) {
	f := newMensalistaFixture()
	f.conta("ABC1234", "Maria Souza", nil, true)

	resp, err := f.svc.RegistrarPagamento(context.Background(), dto.PagamentoMensalistaRequest{
		Placa:      "abc 1234",
		Meses:      1,
		Pagamentos: pagamentoMensal(300),
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalPago.Equal(decimal.NewFromFloat(300)))
}

func TestPagamento_ValorDivergente(t *testing.T) {
	f := newMensalistaFixture()
	m := f.conta("ABC1234", "Maria Souza", nil, true)

	_, err := f.svc.RegistrarPagamento(context.Background(), dto.PagamentoMensalistaRequest{
		MensalistaID: m.ID.String(),
		Meses:        2,
		Pagamentos:   pagamentoMensal(300),
	})
	assert.ErrorIs(t, err, pagamento.ErrPagamentoDivergente)
	assert.Empty(t, f.caixa.movimentos)
}

func TestPagamento_ContaInativa(t *testing.T) {
	f := newMensalistaFixture()
	m := f.conta("ABC1234", "Maria Souza", nil, false)

	_, err := f.svc.RegistrarPagamento(context.Background(), dto.PagamentoMensalistaRequest{
		MensalistaID: m.ID.String(),
		Meses:        1,
		Pagamentos:   pagamentoMensal(300),
	})
	assert.ErrorIs(t, err, ErrMensalistaInativo)
}

func TestPagamento_ContaNaoEncontrada(t *testing.T) {
	f := newMensalistaFixture()

	_, err := f.svc.RegistrarPagamento(context.Background(), dto.PagamentoMensalistaRequest{
		MensalistaID: uuid.NewString(),
		Meses:        1,
		Pagamentos:   pagamentoMensal(300),
	})
	assert.ErrorIs(t, err, ErrMensalistaNaoEncontrado)

	_, err = f.svc.RegistrarPagamento(context.Background(), dto.PagamentoMensalistaRequest{
		Meses:      1,
		Pagamentos: pagamentoMensal(300),
	})
	assert.ErrorIs(t, err, ErrIdentificadorAusente)
}

// ── Ativação & listagem ──────────────────────────────────────────────────────

func TestSetAtivo(t *testing.T) {
	f := newMensalistaFixture()
	m := f.conta("ABC1234", "Maria Souza", nil, true)

	resp, err := f.svc.SetAtivo(context.Background(), m.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.Ativo)

	resp, err = f.svc.SetAtivo(context.Background(), m.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.Ativo)

	_, err = f.svc.SetAtivo(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrMensalistaNaoEncontrado)
}

func TestList_MarcaVencidos(t *testing.T) {
	f := newMensalistaFixture()
	vencido := diasAPartirDeHoje(-5)
	emDia := diasAPartirDeHoje(5)
	f.conta("ABC1234", "Atrasada", &vencido, true)
	f.conta("DEF5678", "Em Dia", &emDia, true)

	lista, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 2)
	assert.True(t, lista[0].Vencido)
	assert.False(t, lista[1].Vencido)
}
