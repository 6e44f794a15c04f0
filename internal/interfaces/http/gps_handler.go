package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gesielr/guiasMEIlast/internal/application/dto"
	"github.com/gesielr/guiasMEIlast/internal/application/emission"
	"github.com/gesielr/guiasMEIlast/internal/domain"
)

// GPSHandler trata a emissão e consulta de guias GPS (protegido).
type GPSHandler struct {
	uc *emission.UseCase
}

// NewGPSHandler constrói o handler.
func NewGPSHandler(uc *emission.UseCase) *GPSHandler {
	return &GPSHandler{uc: uc}
}

// Emit godoc
// @Summary      Emitir guia GPS
// @Description  Emite a guia da competência informada. O valor pode ser direto
// @Description  (amount) ou calculado pela categoria de contribuinte (class + base).
// @Tags         gps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.EmitGPSRequest  true  "dados da emissão"
// @Success      201   {object}  dto.EmitGPSResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/gps/emit [post]
func (h *GPSHandler) Emit(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.EmitGPSRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Emit(c.Context(), userID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar emissões do contribuinte
// @Tags         gps
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "tamanho da página (padrão 20)"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {array}  entity.Emission
// @Router       /api/gps [get]
func (h *GPSHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), userID, dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Consultar uma emissão
// @Tags         gps
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID da emissão"
// @Success      200  {object}  entity.Emission
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/gps/{id} [get]
func (h *GPSHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	em, err := h.uc.GetByID(c.Context(), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "emissão não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(em)
}

// ListDivergences godoc
// @Summary      Listar divergências não resolvidas
// @Tags         divergences
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "tamanho da página"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {array}  entity.Divergence
// @Router       /api/divergences [get]
func (h *GPSHandler) ListDivergences(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListDivergences(c.Context(), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// ResolveDivergence godoc
// @Summary      Marcar divergência como tratada
// @Tags         divergences
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID da divergência"
// @Success      204  "sem conteúdo"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/divergences/{id}/resolve [post]
func (h *GPSHandler) ResolveDivergence(c *fiber.Ctx) error {
	if err := h.uc.ResolveDivergence(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "divergência não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
