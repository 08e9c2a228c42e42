package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/audit"
	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// AuditHandler consulta de la bitácora de auditoría (protegido).
type AuditHandler struct {
	writer *audit.Writer
}

// NewAuditHandler construye el handler.
func NewAuditHandler(writer *audit.Writer) *AuditHandler {
	return &AuditHandler{writer: writer}
}

// List godoc
// @Summary      Listar auditoría
// @Description  Sin filtros devuelve toda la bitácora de la empresa; con entity y entity_id, la de esa entidad.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity     query  string  false  "SparePart | Facility"
// @Param        entity_id  query  string  false  "ID de la entidad (requerido si se envía entity)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.AuditListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := pageParams(c)
	entityType, entityID := c.Query("entity"), c.Query("entity_id")

	var (
		list []*entity.AuditEntry
		err  error
	)
	switch {
	case entityType == "" && entityID == "":
		list, err = h.writer.ListByCompany(c.UserContext(), companyID, limit, offset)
	case entityType != "" && entityID != "":
		list, err = h.writer.ListByEntity(c.UserContext(), companyID, entityType, entityID, limit, offset)
	default:
		return validation(c, "entity y entity_id van juntos")
	}
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.AuditEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.ToAuditEntryResponse(e))
	}
	return c.JSON(dto.AuditListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}})
}
