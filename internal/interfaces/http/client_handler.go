package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/usecase"
)

// ClientHandler maneja el CRUD de clientes con archivado.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler de clientes.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequest  true  "name, cif, address, contactEmail, contactPhone"
// @Success      201   {object}  dto.ClientEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/client [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	client, err := h.uc.Create(GetUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ClientEnvelope{Client: dto.ToClientResponse(client)})
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "id del cliente"
// @Param        body  body  dto.ClientRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ClientEnvelope
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/client/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	client, err := h.uc.Update(GetUser(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClientEnvelope{Client: dto.ToClientResponse(client)})
}

// List godoc
// @Summary      Listar clientes activos visibles (propios + compañía)
// @Tags         client
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Security     BearerAuth
// @Router       /api/client [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToClientResponses(list))
}

// ListArchived godoc
// @Summary      Listar clientes archivados visibles
// @Tags         client
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Security     BearerAuth
// @Router       /api/client/archived [get]
func (h *ClientHandler) ListArchived(c *fiber.Ctx) error {
	list, err := h.uc.ListArchived(GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToClientResponses(list))
}

// GetByID godoc
// @Summary      Obtener cliente por id
// @Tags         client
// @Produce      json
// @Param        id  path  string  true  "id del cliente"
// @Success      200  {object}  dto.ClientEnvelope
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/client/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClientEnvelope{Client: dto.ToClientResponse(client)})
}

// Delete godoc
// @Summary      Eliminar cliente (soft por defecto; ?soft=false purga)
// @Tags         client
// @Produce      json
// @Param        id    path   string  true   "id del cliente"
// @Param        soft  query  string  false  "true (por defecto) archiva; false purga"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/client/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	soft := c.Query("soft", "true") != "false"
	if err := h.uc.Delete(GetUser(c), c.Params("id"), soft); err != nil {
		return respondError(c, err)
	}
	if soft {
		return c.JSON(dto.MessageResponse{Message: "Cliente archivado correctamente"})
	}
	return c.JSON(dto.MessageResponse{Message: "Cliente eliminado correctamente"})
}

// Restore godoc
// @Summary      Restaurar cliente archivado
// @Tags         client
// @Produce      json
// @Param        id  path  string  true  "id del cliente"
// @Success      200  {object}  dto.ClientEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/client/restore/{id} [put]
func (h *ClientHandler) Restore(c *fiber.Ctx) error {
	client, err := h.uc.Restore(GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClientEnvelope{
		Message: "Cliente restaurado correctamente",
		Client:  dto.ToClientResponse(client),
	})
}
