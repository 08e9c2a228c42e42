package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/application/inventory"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
)

// TransferHandler traslados, devoluciones y consultas del libro (protegido).
type TransferHandler struct {
	transfers  *inventory.TransferUseCase
	ledger     *inventory.LedgerUseCase
	facilities *usecase.FacilityUseCase
}

// NewTransferHandler construye el handler. facilities se usa para completar el nombre
// de la sede destino cuando el body no lo trae.
func NewTransferHandler(transfers *inventory.TransferUseCase, ledger *inventory.LedgerUseCase, facilities *usecase.FacilityUseCase) *TransferHandler {
	return &TransferHandler{transfers: transfers, ledger: ledger, facilities: facilities}
}

// Transfer godoc
// @Summary      Trasladar stock de la bodega central a una sede
// @Description  Atómico: actualiza saldos, agrega una entrada al libro y una de auditoría.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del repuesto"
// @Param        body  body  dto.TransferRequest  true  "quantity, to_facility_id, to_facility_name (opcional si la sede está registrada)"
// @Success      201   {object}  dto.TransferLogEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/spare-parts/{id}/transfers [post]
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Quantity < 1 {
		return validation(c, "quantity debe ser un entero positivo")
	}
	if in.ToFacilityID == "" {
		return validation(c, "to_facility_id es requerido")
	}
	if in.ToFacilityName == "" && h.facilities != nil {
		f, err := h.facilities.GetByID(c.UserContext(), companyID, in.ToFacilityID)
		if err != nil {
			return writeError(c, err)
		}
		if f != nil {
			in.ToFacilityName = f.Name
		}
	}
	if in.ToFacilityName == "" {
		return validation(c, "to_facility_name es requerido para sedes no registradas")
	}

	entry, err := h.transfers.Transfer(c.UserContext(), inventory.TransferInput{
		PartID:         c.Params("id"),
		Quantity:       in.Quantity,
		ToFacilityID:   in.ToFacilityID,
		ToFacilityName: in.ToFacilityName,
		CompanyID:      companyID,
		ActingUserID:   userID,
		ActingUserName: GetUserName(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransferLogEntryResponse(entry))
}

// Return godoc
// @Summary      Devolver stock de una sede a la bodega central
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del repuesto"
// @Param        body  body  dto.ReturnRequest  true  "quantity, from_facility_id"
// @Success      201   {object}  dto.TransferLogEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/spare-parts/{id}/returns [post]
func (h *TransferHandler) Return(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Quantity < 1 {
		return validation(c, "quantity debe ser un entero positivo")
	}
	if in.FromFacilityID == "" {
		return validation(c, "from_facility_id es requerido")
	}
	entry, err := h.transfers.ReturnToCentral(c.UserContext(), inventory.ReturnInput{
		PartID:         c.Params("id"),
		Quantity:       in.Quantity,
		FromFacilityID: in.FromFacilityID,
		CompanyID:      companyID,
		ActingUserID:   userID,
		ActingUserName: GetUserName(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransferLogEntryResponse(entry))
}

// ListByPart godoc
// @Summary      Libro de traslados de un repuesto
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del repuesto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.TransferLogListResponse
// @Router       /api/spare-parts/{id}/transfers [get]
func (h *TransferHandler) ListByPart(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	limit, offset := pageParams(c)
	out, err := h.ledger.ListByPart(c.UserContext(), companyID, c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF del libro de traslados de un repuesto
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del repuesto"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/spare-parts/{id}/transfers/report [get]
func (h *TransferHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	partID := c.Params("id")
	pdf, err := h.ledger.ExportPartLedgerPDF(c.UserContext(), companyID, partID)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="traslados-`+partID+`.pdf"`)
	return c.Send(pdf)
}

// ListByCompany godoc
// @Summary      Libro de traslados de la empresa
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.TransferLogListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) ListByCompany(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return validation(c, "from debe ser RFC3339")
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return validation(c, "to debe ser RFC3339")
	}
	limit, offset := pageParams(c)
	out, err := h.ledger.ListByCompany(c.UserContext(), companyID, from, to, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
