package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tastebook-backend/internal/http/response"
	"github.com/yungbote/tastebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
	"github.com/yungbote/tastebook-backend/internal/services"
)

type RecipeHandler struct {
	log       *logger.Logger
	recipes   *services.RecipeService
	relations *services.RelationService
	lists     *services.ShoppingListService
}

func NewRecipeHandler(
	baseLog *logger.Logger,
	recipes *services.RecipeService,
	relations *services.RelationService,
	lists *services.ShoppingListService,
) *RecipeHandler {
	return &RecipeHandler{
		log:       baseLog.With("handler", "RecipeHandler"),
		recipes:   recipes,
		relations: relations,
		lists:     lists,
	}
}

type recipeCreateRequest struct {
	Name        string                         `json:"name" binding:"required"`
	Text        string                         `json:"text" binding:"required"`
	CookingTime int                            `json:"cooking_time" binding:"required"`
	Image       string                         `json:"image"`
	Tags        []uuid.UUID                    `json:"tags"`
	Ingredients []services.IngredientLineInput `json:"ingredients"`
}

type recipePatchRequest struct {
	Name        *string                        `json:"name"`
	Text        *string                        `json:"text"`
	CookingTime *int                           `json:"cooking_time"`
	Image       *string                        `json:"image"`
	Tags        []uuid.UUID                    `json:"tags"`
	Ingredients []services.IngredientLineInput `json:"ingredients"`
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailValidation(c, err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	view, err := h.recipes.Create(c.Request.Context(), services.CreateRecipeInput{
		AuthorID:    rd.UserID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		TagIDs:      req.Tags,
		Lines:       req.Ingredients,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, view)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req recipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailValidation(c, err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	view, err := h.recipes.Update(c.Request.Context(), id, services.UpdateRecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		TagIDs:      req.Tags,
		Lines:       req.Ingredients,
	}, rd.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, view)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := h.recipes.Delete(c.Request.Context(), id, rd.UserID); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.recipes.Get(c.Request.Context(), id, ctxutil.ViewerID(c.Request.Context()))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, view)
}

func (h *RecipeHandler) List(c *gin.Context) {
	filter := services.RecipeListFilter{
		Limit:     queryInt(c, "limit", 0),
		Offset:    queryInt(c, "offset", 0),
		Favorited: c.Query("is_favorited") == "1",
		InCart:    c.Query("is_in_shopping_cart") == "1",
	}
	if raw := c.Query("author"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			response.FailValidation(c, err)
			return
		}
		filter.AuthorID = &authorID
	}
	if raw := c.Query("tags"); raw != "" {
		for _, slug := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(slug); trimmed != "" {
				filter.TagSlugs = append(filter.TagSlugs, trimmed)
			}
		}
	}
	views, total, err := h.recipes.List(c.Request.Context(), filter, ctxutil.ViewerID(c.Request.Context()))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, total, filter.Limit, filter.Offset, views)
}

func (h *RecipeHandler) toggleAdd(c *gin.Context, add func(ctx *gin.Context, userID, recipeID uuid.UUID) error) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := add(c, rd.UserID, id); err != nil {
		response.Fail(c, err)
		return
	}
	summary, err := h.recipes.Summary(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, summary)
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.toggleAdd(c, func(ctx *gin.Context, userID, recipeID uuid.UUID) error {
		return h.relations.AddFavorite(ctx.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := h.relations.RemoveFavorite(c.Request.Context(), rd.UserID, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.toggleAdd(c, func(ctx *gin.Context, userID, recipeID uuid.UUID) error {
		return h.relations.AddToCart(ctx.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := h.relations.RemoveFromCart(c.Request.Context(), rd.UserID, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}

// DownloadShoppingCart streams the aggregated list as a text attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	items, err := h.lists.Build(c.Request.Context(), rd.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	body := h.lists.Render(items)
	c.Header("Content-Disposition", `attachment; filename=shopping-list.txt`)
	c.Data(200, "text/plain; charset=utf-8", []byte(body))
}
