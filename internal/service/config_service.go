package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"estapark/internal/dto"
	"estapark/internal/model"
	"estapark/internal/repository"
	"estapark/internal/tarifa"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	configCacheKey = "config:all"
	configCacheTTL = 30 * time.Second
)

type ConfigService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Atualizar(ctx context.Context, req dto.ConfiguracoesRequest) (map[string]string, error)
	// LoadTarifa reads the tariff parameters, falling back per key to the
	// seeded defaults when a row is missing or unparsable.
	LoadTarifa(ctx context.Context) (tarifa.Config, error)
	TotalVagas(ctx context.Context) (int, error)
}

type configService struct {
	repo repository.ConfigRepository
	rdb  *redis.Client
}

func NewConfigService(repo repository.ConfigRepository, rdb *redis.Client) ConfigService {
	return &configService{repo: repo, rdb: rdb}
}

func (s *configService) GetAll(ctx context.Context) (map[string]string, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, configCacheKey).Result(); err == nil {
			var cached map[string]string
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	valores, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(valores); err == nil {
			if err := s.rdb.Set(ctx, configCacheKey, data, configCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("config: cache set failed")
			}
		}
	}
	return valores, nil
}

func (s *configService) Atualizar(ctx context.Context, req dto.ConfiguracoesRequest) (map[string]string, error) {
	valores := map[string]string{
		model.ChaveValorHoraInicial:   req.ValorHoraInicial,
		model.ChaveValorHoraAdicional: req.ValorHoraAdicional,
		model.ChaveTempoTolerancia:    req.TempoTolerancia,
		model.ChaveTotalVagas:         req.TotalVagas,
		model.ChaveValorMensalidade:   req.ValorMensalidade,
		model.ChaveValorDiaria:        req.ValorDiaria,
	}

	// Reject before persisting anything: monetary values must parse as
	// non-negative decimals, counters as positive integers.
	for _, chave := range []string{model.ChaveValorHoraInicial, model.ChaveValorHoraAdicional, model.ChaveValorMensalidade, model.ChaveValorDiaria} {
		v, err := decimal.NewFromString(valores[chave])
		if err != nil || v.IsNegative() {
			return nil, ErrConfiguracaoInvalida
		}
	}
	if n, err := strconv.Atoi(valores[model.ChaveTempoTolerancia]); err != nil || n < 0 {
		return nil, ErrConfiguracaoInvalida
	}
	if n, err := strconv.Atoi(valores[model.ChaveTotalVagas]); err != nil || n < 1 {
		return nil, ErrConfiguracaoInvalida
	}

	for chave, valor := range valores {
		if err := s.repo.Set(ctx, chave, valor); err != nil {
			return nil, err
		}
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, configCacheKey).Err(); err != nil {
			log.Warn().Err(err).Msg("config: cache invalidation failed")
		}
	}
	return s.repo.GetAll(ctx)
}

func (s *configService) LoadTarifa(ctx context.Context) (tarifa.Config, error) {
	cfg := tarifa.DefaultConfig()
	valores, err := s.GetAll(ctx)
	if err != nil {
		return cfg, err
	}

	if v, err := decimal.NewFromString(valores[model.ChaveValorHoraInicial]); err == nil {
		cfg.PrimeiraHora = v
	}
	if v, err := decimal.NewFromString(valores[model.ChaveValorHoraAdicional]); err == nil {
		cfg.HoraAdicional = v
	}
	if n, err := strconv.Atoi(valores[model.ChaveTempoTolerancia]); err == nil {
		cfg.ToleranciaMinutos = n
	}
	if v, err := decimal.NewFromString(valores[model.ChaveValorDiaria]); err == nil {
		cfg.Diaria = v
	}
	if v, err := decimal.NewFromString(valores[model.ChaveValorMensalidade]); err == nil {
		cfg.Mensalidade = v
	}
	return cfg, nil
}

func (s *configService) TotalVagas(ctx context.Context) (int, error) {
	valores, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if n, err := strconv.Atoi(valores[model.ChaveTotalVagas]); err == nil && n > 0 {
		return n, nil
	}
	return 50, nil
}
