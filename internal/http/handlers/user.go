package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tastebook-backend/internal/http/response"
	"github.com/yungbote/tastebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
	"github.com/yungbote/tastebook-backend/internal/services"
)

type UserHandler struct {
	log       *logger.Logger
	users     *services.UserService
	relations *services.RelationService
}

func NewUserHandler(baseLog *logger.Logger, users *services.UserService, relations *services.RelationService) *UserHandler {
	return &UserHandler{
		log:       baseLog.With("handler", "UserHandler"),
		users:     users,
		relations: relations,
	}
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func (h *UserHandler) Me(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	view, err := h.users.Get(c.Request.Context(), rd.UserID, &rd.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, view)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.users.Get(c.Request.Context(), id, ctxutil.ViewerID(c.Request.Context()))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, view)
}

func (h *UserHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)
	views, total, err := h.users.List(c.Request.Context(), limit, offset, ctxutil.ViewerID(c.Request.Context()))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, total, limit, offset, views)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)
	recipesLimit := queryInt(c, "recipes_limit", 0)
	views, total, err := h.users.Subscriptions(c.Request.Context(), rd.UserID, limit, offset, recipesLimit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, total, limit, offset, views)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := h.relations.Subscribe(c.Request.Context(), rd.UserID, id); err != nil {
		response.Fail(c, err)
		return
	}
	view, err := h.users.Get(c.Request.Context(), id, &rd.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, view)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := h.relations.Unsubscribe(c.Request.Context(), rd.UserID, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}
