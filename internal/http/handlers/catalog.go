package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tastebook-backend/internal/http/response"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
	"github.com/yungbote/tastebook-backend/internal/services"
)

type CatalogHandler struct {
	log     *logger.Logger
	catalog *services.CatalogService
}

func NewCatalogHandler(baseLog *logger.Logger, catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{log: baseLog.With("handler", "CatalogHandler"), catalog: catalog}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.FailValidation(c, errors.New(name+" must be a uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalog.ListTags(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, tags)
}

func (h *CatalogHandler) GetTag(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	tag, err := h.catalog.GetTag(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, tag)
}

func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.catalog.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ingredients)
}

func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	ingredient, err := h.catalog.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, ingredient)
}
