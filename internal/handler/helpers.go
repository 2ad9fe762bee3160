package handler

import (
	"errors"
	"net/http"
	"reflect"

	"estapark/internal/apierror"
	"estapark/internal/pagamento"
	"estapark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQueryAndValidate is the query-string variant for filter structs.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parâmetros inválidos: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps domain errors onto HTTP statuses. Unknown errors become
// an opaque 500 — the raw message never reaches the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessaoNaoEncontrada),
		errors.Is(err, service.ErrMensalistaNaoEncontrado),
		errors.Is(err, service.ErrTurnoNaoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))

	case errors.Is(err, service.ErrSessaoDuplicada),
		errors.Is(err, service.ErrTicketDuplicado),
		errors.Is(err, service.ErrFechamentoExistente),
		errors.Is(err, service.ErrTurnoAberto),
		errors.Is(err, service.ErrTurnoJaFechado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))

	case errors.Is(err, pagamento.ErrPagamentoDivergente),
		errors.Is(err, service.ErrConfiguracaoInvalida):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))

	// Lot full is a business rejection the terminal shows the driver,
	// not a conflict on a resource.
	case errors.Is(err, service.ErrPatioLotado),
		errors.Is(err, service.ErrPlacaInvalida),
		errors.Is(err, service.ErrClassificacaoAmbigua),
		errors.Is(err, service.ErrMensalistaSemNome),
		errors.Is(err, service.ErrIdentificadorAusente),
		errors.Is(err, service.ErrObservacaoObrigatoria),
		errors.Is(err, service.ErrMensalistaInativo):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
	}
}
