package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRegistry = errors.New("registry unavailable")

func falha() error   { return errRegistry }
func sucesso() error { return nil }

func TestCircuitBreaker_AbreAposFalhasConsecutivas(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(falha), errRegistry)
	}
	assert.Equal(t, CBOpen, cb.State())

	// Open: fast-fail without calling fn
	chamado := false
	err := cb.Execute(func() error { chamado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, chamado)
}

func TestCircuitBreaker_SucessoZeraContagem(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	require.Error(t, cb.Execute(falha))
	require.Error(t, cb.Execute(falha))
	require.NoError(t, cb.Execute(sucesso))
	require.Error(t, cb.Execute(falha))
	require.Error(t, cb.Execute(falha))

	assert.Equal(t, CBClosed, cb.State(), "non-consecutive failures must not trip the breaker")
}

func TestCircuitBreaker_HalfOpenFechaAposSucessos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(falha))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(sucesso))
	require.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(sucesso))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenReabreNaFalha(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(falha))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.ErrorIs(t, cb.Execute(falha), errRegistry)
	assert.Equal(t, CBOpen, cb.State())
}
