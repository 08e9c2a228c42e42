package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
)

// FacilityHandler maneja las peticiones HTTP del directorio de sedes (protegido).
type FacilityHandler struct {
	uc *usecase.FacilityUseCase
}

// NewFacilityHandler construye el handler.
func NewFacilityHandler(uc *usecase.FacilityUseCase) *FacilityHandler {
	return &FacilityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sede
// @Tags         facilities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFacilityRequest  true  "Datos de la sede"
// @Success      201   {object}  dto.FacilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/facilities [post]
func (h *FacilityHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateFacilityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sede por ID
// @Tags         facilities
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sede"
// @Success      200  {object}  dto.FacilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facilities/{id} [get]
func (h *FacilityHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "sede no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sede
// @Description  Los saldos ya registrados conservan el nombre con el que se crearon.
// @Tags         facilities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la sede"
// @Param        body  body  dto.UpdateFacilityRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FacilityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/facilities/{id} [put]
func (h *FacilityHandler) Update(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateFacilityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), companyID, userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "sede no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sedes
// @Tags         facilities
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.FacilityListResponse
// @Router       /api/facilities [get]
func (h *FacilityHandler) List(c *fiber.Ctx) error {
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
