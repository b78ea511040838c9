package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/freelance-tracker-api/internal/errors"
	"github.com/yukikurage/freelance-tracker-api/internal/middleware"
	"github.com/yukikurage/freelance-tracker-api/internal/services"
	"github.com/yukikurage/freelance-tracker-api/internal/utils"
	"go.uber.org/zap"
)

// ResourceHandler exposes one collection over the uniform CRUD routes.
type ResourceHandler struct {
	service *services.ResourceService
	entity  string
	log     *zap.Logger
}

// NewResourceHandler creates a handler. entity is the singular name used in
// response messages, e.g. "Client".
func NewResourceHandler(service *services.ResourceService, entity string, log *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		entity:  entity,
		log:     log,
	}
}

// List returns the whole collection.
func (h *ResourceHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

// Get returns a single record.
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		h.notFound(c)
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Create stores the payload as a new record owned by the caller.
func (h *ResourceHandler) Create(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	owner, _ := middleware.CurrentUser(c)

	rec, err := h.service.Create(c.Request.Context(), owner, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// Update merges the payload over an existing record.
func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		h.notFound(c)
		return
	}

	payload, err := bindPayload(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	rec, err := h.service.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Delete removes a record.
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		h.notFound(c)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: h.entity + " deleted successfully"})
}

func (h *ResourceHandler) notFound(c *gin.Context) {
	apierrors.NotFound(c, h.entity+" not found")
}

func (h *ResourceHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrResourceNotFound) {
		h.notFound(c)
		return
	}
	h.log.Error("Resource request failed", zap.String("entity", h.entity), zap.Error(err))
	apierrors.InternalError(c, "")
}
