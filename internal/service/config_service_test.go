package service

import (
	"context"
	"testing"

	"estapark/internal/dto"
	"estapark/internal/model"
	"estapark/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfigRepo struct {
	valores map[string]string
}

var _ repository.ConfigRepository = (*stubConfigRepo)(nil)

func newStubConfigRepo() *stubConfigRepo {
	return &stubConfigRepo{valores: map[string]string{}}
}

func (r *stubConfigRepo) GetAll(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(r.valores))
	for k, v := range r.valores {
		out[k] = v
	}
	return out, nil
}

func (r *stubConfigRepo) Set(ctx context.Context, chave, valor string) error {
	r.valores[chave] = valor
	return nil
}

func (r *stubConfigRepo) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	for k, v := range defaults {
		if _, ok := r.valores[k]; !ok {
			r.valores[k] = v
		}
	}
	return nil
}

func configRequestValida() dto.ConfiguracoesRequest {
	return dto.ConfiguracoesRequest{
		ValorHoraInicial:   "6.00",
		ValorHoraAdicional: "3.00",
		TempoTolerancia:    "10",
		TotalVagas:         "80",
		ValorMensalidade:   "350.00",
		ValorDiaria:        "30.00",
	}
}

func TestConfigAtualizar(t *testing.T) {
	repo := newStubConfigRepo()
	svc := NewConfigService(repo, nil)

	valores, err := svc.Atualizar(context.Background(), configRequestValida())
	require.NoError(t, err)
	assert.Equal(t, "6.00", valores[model.ChaveValorHoraInicial])
	assert.Equal(t, "80", valores[model.ChaveTotalVagas])
}

func TestConfigAtualizar_Invalida(t *testing.T) {
	repo := newStubConfigRepo()
	svc := NewConfigService(repo, nil)

	casos := []func(*dto.ConfiguracoesRequest){
		func(r *dto.ConfiguracoesRequest) { r.ValorHoraInicial = "abc" },
		func(r *dto.ConfiguracoesRequest) { r.ValorHoraAdicional = "-1" },
		func(r *dto.ConfiguracoesRequest) { r.TempoTolerancia = "-5" },
		func(r *dto.ConfiguracoesRequest) { r.TotalVagas = "0" },
		func(r *dto.ConfiguracoesRequest) { r.ValorMensalidade = "" },
	}
	for _, mutar := range casos {
		req := configRequestValida()
		mutar(&req)
		_, err := svc.Atualizar(context.Background(), req)
		assert.ErrorIs(t, err, ErrConfiguracaoInvalida)
	}
	assert.Empty(t, repo.valores, "nothing persists when any value is rejected")
}

func TestConfigLoadTarifa(t *testing.T) {
	repo := newStubConfigRepo()
	repo.valores[model.ChaveValorHoraInicial] = "8.00"
	repo.valores[model.ChaveTempoTolerancia] = "20"
	svc := NewConfigService(repo, nil)

	cfg, err := svc.LoadTarifa(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.PrimeiraHora.Equal(decimal.NewFromFloat(8)))
	assert.Equal(t, 20, cfg.ToleranciaMinutos)
	// Keys without rows keep the seeded defaults.
	assert.True(t, cfg.HoraAdicional.Equal(decimal.NewFromFloat(2.50)))
	assert.True(t, cfg.Mensalidade.Equal(decimal.NewFromFloat(300)))
}

func TestConfigTotalVagas(t *testing.T) {
	repo := newStubConfigRepo()
	svc := NewConfigService(repo, nil)

	vagas, err := svc.TotalVagas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, vagas, "missing row falls back to the default capacity")

	repo.valores[model.ChaveTotalVagas] = "120"
	vagas, err = svc.TotalVagas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, vagas)
}
