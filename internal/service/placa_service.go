package service

import (
	"context"
	"encoding/json"
	"time"

	"estapark/internal/dto"
	"estapark/internal/infra"
	"estapark/internal/placa"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	placaCachePrefix = "placa:"
	placaCacheTTL    = 24 * time.Hour
)

// PlacaLookupService prefills vehicle data on check-in from the external
// registry. Lookups degrade, never fail: cache miss + registry outage just
// means Encontrado=false and the operator types the data in.
type PlacaLookupService interface {
	Consultar(ctx context.Context, placaBusca string) (*dto.PlacaInfoResponse, error)
}

type placaLookupService struct {
	client *infra.PlacaClient
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewPlacaLookupService(client *infra.PlacaClient, cb *infra.CircuitBreaker, rdb *redis.Client) PlacaLookupService {
	return &placaLookupService{client: client, cb: cb, rdb: rdb}
}

func (s *placaLookupService) Consultar(ctx context.Context, placaBusca string) (*dto.PlacaInfoResponse, error) {
	placaNorm := placa.Normalizar(placaBusca)
	if !placa.Valida(placaNorm) {
		return nil, ErrPlacaInvalida
	}

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, placaCachePrefix+placaNorm).Result(); err == nil {
			var info infra.PlacaInfo
			if json.Unmarshal([]byte(raw), &info) == nil {
				return placaToResponse(&info, "cache"), nil
			}
		}
	}

	var info *infra.PlacaInfo
	cbErr := s.cb.Execute(func() error {
		result, err := s.client.Consultar(ctx, placaNorm)
		if err != nil {
			return err
		}
		info = result
		return nil
	})
	if cbErr != nil {
		log.Warn().Err(cbErr).Str("placa", placaNorm).Msg("placa: registry lookup failed")
		return &dto.PlacaInfoResponse{Encontrado: false}, nil
	}
	if info == nil {
		return &dto.PlacaInfoResponse{Encontrado: false}, nil
	}

	if s.rdb != nil {
		if data, err := json.Marshal(info); err == nil {
			if err := s.rdb.Set(ctx, placaCachePrefix+placaNorm, data, placaCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("placa: cache set failed")
			}
		}
	}
	return placaToResponse(info, "api"), nil
}

func placaToResponse(info *infra.PlacaInfo, origem string) *dto.PlacaInfoResponse {
	return &dto.PlacaInfoResponse{
		Encontrado: true,
		Marca:      info.Marca,
		Modelo:     info.Modelo,
		Ano:        info.Ano,
		Cor:        info.Cor,
		Origem:     origem,
	}
}
