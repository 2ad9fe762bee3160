package handler

import (
	"net/http"

	"estapark/internal/service"

	"github.com/gin-gonic/gin"
)

type PlacaHandler struct{ svc service.PlacaLookupService }

func NewPlacaHandler(svc service.PlacaLookupService) *PlacaHandler { return &PlacaHandler{svc: svc} }

// Consultar godoc
// @Summary Consulta os dados do veículo pela placa
// @Description Busca marca/modelo/cor no registro externo para pré-preencher a
// @Description entrada. Placa desconhecida ou registro fora do ar respondem 200
// @Description com encontrado=false.
// @Tags placa
// @Produce json
// @Security TokenAuth
// @Param placa path string true "Placa"
// @Success 200 {object} dto.PlacaInfoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/placa/{placa} [get]
func (h *PlacaHandler) Consultar(c *gin.Context) {
	resp, err := h.svc.Consultar(c.Request.Context(), c.Param("placa"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
