package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/deliverynote"
	"github.com/jhoicas/albaranes-api/internal/application/dto"
)

// DeliveryNoteHandler maneja albaranes: CRUD, firma y PDF.
type DeliveryNoteHandler struct {
	uc *deliverynote.UseCase
}

// NewDeliveryNoteHandler construye el handler de albaranes.
func NewDeliveryNoteHandler(uc *deliverynote.UseCase) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear albarán (horas o materiales)
// @Tags         deliverynote
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "clientId, projectId, type, entries"
// @Success      201   {object}  dto.NoteEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliverynote [post]
func (h *DeliveryNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	note, err := h.uc.Create(GetUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NoteEnvelope{DeliveryNote: dto.ToNoteResponse(note)})
}

// List godoc
// @Summary      Listar albaranes visibles (propios + compañía)
// @Tags         deliverynote
// @Produce      json
// @Success      200  {array}  dto.NoteResponse
// @Security     BearerAuth
// @Router       /api/deliverynote [get]
func (h *DeliveryNoteHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToNoteResponses(list))
}

// GetByID godoc
// @Summary      Obtener albarán por id
// @Tags         deliverynote
// @Produce      json
// @Param        id  path  string  true  "id del albarán"
// @Success      200  {object}  dto.NoteEnvelope
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliverynote/{id} [get]
func (h *DeliveryNoteHandler) GetByID(c *fiber.Ctx) error {
	note, err := h.uc.GetByID(GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NoteEnvelope{DeliveryNote: dto.ToNoteResponse(note)})
}

// PDF godoc
// @Summary      Descargar el albarán en PDF
// @Tags         deliverynote
// @Produce      application/pdf
// @Param        id  path  string  true  "id del albarán"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliverynote/pdf/{id} [get]
func (h *DeliveryNoteHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GeneratePDF(c.Context(), GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="albaran-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

// Sign godoc
// @Summary      Firmar albarán con imagen (multipart, campo "image"); irreversible
// @Tags         deliverynote
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "id del albarán"
// @Param        image  formData  file    true  "imagen de la firma"
// @Success      200    {object}  dto.NoteEnvelope
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliverynote/sign/{id} [patch]
func (h *DeliveryNoteHandler) Sign(c *fiber.Ctx) error {
	data, filename, err := readFormFile(c, "image")
	if err != nil {
		return badRequest(c, "fichero 'image' requerido")
	}
	note, err := h.uc.Sign(c.Context(), GetUser(c), c.Params("id"), data, filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NoteEnvelope{
		Message:      "Albarán firmado correctamente",
		DeliveryNote: dto.ToNoteResponse(note),
	})
}

// Delete godoc
// @Summary      Eliminar albarán (soft por defecto; un albarán firmado nunca se borra)
// @Tags         deliverynote
// @Produce      json
// @Param        id    path   string  true   "id del albarán"
// @Param        soft  query  string  false  "true (por defecto) archiva; false purga"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliverynote/{id} [delete]
func (h *DeliveryNoteHandler) Delete(c *fiber.Ctx) error {
	soft := c.Query("soft", "true") != "false"
	if err := h.uc.Delete(GetUser(c), c.Params("id"), soft); err != nil {
		return respondError(c, err)
	}
	if soft {
		return c.JSON(dto.MessageResponse{Message: "Albarán archivado correctamente"})
	}
	return c.JSON(dto.MessageResponse{Message: "Albarán eliminado correctamente"})
}
