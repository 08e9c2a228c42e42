package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
)

// SparePartHandler maneja las peticiones HTTP de repuestos (protegido).
type SparePartHandler struct {
	uc *usecase.SparePartUseCase
}

// NewSparePartHandler construye el handler.
func NewSparePartHandler(uc *usecase.SparePartUseCase) *SparePartHandler {
	return &SparePartHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar repuesto
// @Description  Crea el repuesto con su stock inicial en la bodega central y sin saldos por sede.
// @Tags         spare-parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSparePartRequest  true  "Datos del repuesto"
// @Success      201   {object}  dto.SparePartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/spare-parts [post]
func (h *SparePartHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateSparePartRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	if in.Quantity < 0 {
		return validation(c, "quantity no puede ser negativa")
	}
	out, err := h.uc.Create(c.UserContext(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener repuesto por ID
// @Tags         spare-parts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.SparePartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/spare-parts/{id} [get]
func (h *SparePartHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "repuesto no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar repuestos
// @Tags         spare-parts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SparePartListResponse
// @Router       /api/spare-parts [get]
func (h *SparePartHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), companyID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
