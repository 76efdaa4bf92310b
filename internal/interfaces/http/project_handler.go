package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/dto"
	"github.com/jhoicas/albaranes-api/internal/application/usecase"
)

// ProjectHandler maneja el CRUD de proyectos con archivado.
type ProjectHandler struct {
	uc *usecase.ProjectUseCase
}

// NewProjectHandler construye el handler de proyectos.
func NewProjectHandler(uc *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proyecto asociado a un cliente
// @Tags         project
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProjectRequest  true  "name, description, client, startDate, endDate"
// @Success      201   {object}  dto.ProjectEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/project [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.ProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	project, err := h.uc.Create(GetUser(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProjectEnvelope{Project: dto.ToProjectResponse(project)})
}

// Update godoc
// @Summary      Actualizar proyecto
// @Tags         project
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "id del proyecto"
// @Param        body  body  dto.ProjectRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ProjectEnvelope
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/project/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.ProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	project, err := h.uc.Update(GetUser(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProjectEnvelope{Project: dto.ToProjectResponse(project)})
}

// List godoc
// @Summary      Listar proyectos activos visibles (propios + compañía)
// @Tags         project
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Security     BearerAuth
// @Router       /api/project [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProjectResponses(list))
}

// ListArchived godoc
// @Summary      Listar proyectos archivados visibles
// @Tags         project
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Security     BearerAuth
// @Router       /api/project/archived [get]
func (h *ProjectHandler) ListArchived(c *fiber.Ctx) error {
	list, err := h.uc.ListArchived(GetUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProjectResponses(list))
}

// GetByID godoc
// @Summary      Obtener proyecto por id
// @Tags         project
// @Produce      json
// @Param        id  path  string  true  "id del proyecto"
// @Success      200  {object}  dto.ProjectEnvelope
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/project/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	project, err := h.uc.GetByID(GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProjectEnvelope{Project: dto.ToProjectResponse(project)})
}

// Delete godoc
// @Summary      Eliminar proyecto (soft por defecto; ?soft=false purga)
// @Tags         project
// @Produce      json
// @Param        id    path   string  true   "id del proyecto"
// @Param        soft  query  string  false  "true (por defecto) archiva; false purga"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/project/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	soft := c.Query("soft", "true") != "false"
	if err := h.uc.Delete(GetUser(c), c.Params("id"), soft); err != nil {
		return respondError(c, err)
	}
	if soft {
		return c.JSON(dto.MessageResponse{Message: "Proyecto archivado correctamente"})
	}
	return c.JSON(dto.MessageResponse{Message: "Proyecto eliminado correctamente"})
}

// Restore godoc
// @Summary      Restaurar proyecto archivado
// @Tags         project
// @Produce      json
// @Param        id  path  string  true  "id del proyecto"
// @Success      200  {object}  dto.ProjectEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/project/restore/{id} [put]
func (h *ProjectHandler) Restore(c *fiber.Ctx) error {
	project, err := h.uc.Restore(GetUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProjectEnvelope{
		Message: "Proyecto restaurado correctamente",
		Project: dto.ToProjectResponse(project),
	})
}
