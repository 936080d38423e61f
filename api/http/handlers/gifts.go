package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/giftlink/giftlink-backend/api/http/presenter"
	"github.com/giftlink/giftlink-backend/pkg/gifts"
)

type GiftHandler struct {
	useCase gifts.UseCase
}

func NewGiftHandler(useCase gifts.UseCase) *GiftHandler {
	return &GiftHandler{useCase: useCase}
}

type giftResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	AgeYears    int    `json:"ageYears"`
	Description string `json:"description"`
	PostedAt    string `json:"postedAt"`
}

func toGiftResponse(g gifts.Gift) giftResponse {
	return giftResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Category:    g.Category,
		Condition:   g.Condition,
		AgeYears:    g.AgeYears,
		Description: g.Description,
		PostedAt:    g.PostedAt.Format(time.RFC3339),
	}
}

func toGiftResponses(items []gifts.Gift) []giftResponse {
	res := make([]giftResponse, 0, len(items))
	for _, g := range items {
		res = append(res, toGiftResponse(g))
	}
	return res
}

// List returns the gift catalog, newest first.
// @Summary List gifts
// @Tags    gifts
// @Produce json
// @Param   limit  query int false "page size"
// @Param   offset query int false "page offset"
// @Success 200 {array} giftResponse
// @Router  /gifts [get]
func (h *GiftHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list gifts")
	}
	return presenter.JSON(c, http.StatusOK, toGiftResponses(items))
}

// GetByID returns a single gift.
// @Summary Get gift
// @Tags    gifts
// @Produce json
// @Param   id path string true "gift id"
// @Success 200 {object} giftResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /gifts/{id} [get]
func (h *GiftHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid gift id")
	}
	g, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gifts.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "gift not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get gift")
	}
	return presenter.JSON(c, http.StatusOK, toGiftResponse(g))
}

type postGiftRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	AgeYears    int    `json:"ageYears"`
	Description string `json:"description"`
}

// Post creates a gift; the poster identity comes from the verified token.
// @Summary Post gift
// @Tags    gifts
// @Accept  json
// @Produce json
// @Param   input body postGiftRequest true "gift payload"
// @Success 201 {object} giftResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Security BearerAuth
// @Router  /gifts [post]
func (h *GiftHandler) Post(c *fiber.Ctx) error {
	var req postGiftRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	var postedBy uuid.UUID
	if v, ok := c.Locals("userId").(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			postedBy = id
		}
	}

	g, err := h.useCase.Post(c.Context(), gifts.Gift{
		Name:        req.Name,
		Category:    req.Category,
		Condition:   req.Condition,
		AgeYears:    req.AgeYears,
		Description: req.Description,
		PostedBy:    postedBy,
	})
	if err != nil {
		var verr gifts.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to post gift")
	}
	return presenter.JSON(c, http.StatusCreated, toGiftResponse(g))
}

// Search filters the catalog by name, category, condition and age.
// @Summary Search gifts
// @Tags    gifts
// @Produce json
// @Param   name      query string false "substring name match"
// @Param   category  query string false "category filter"
// @Param   condition query string false "condition filter"
// @Param   age_years query int    false "maximum age in years"
// @Param   limit     query int    false "page size"
// @Param   offset    query int    false "page offset"
// @Success 200 {array} giftResponse
// @Router  /search [get]
func (h *GiftHandler) Search(c *fiber.Ctx) error {
	f := gifts.Filter{
		Name:      strings.TrimSpace(c.Query("name")),
		Category:  strings.TrimSpace(c.Query("category")),
		Condition: strings.TrimSpace(c.Query("condition")),
	}
	if v := strings.TrimSpace(c.Query("age_years")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.MaxAgeYears = n
		}
	}

	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.Search(c.Context(), f, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to search gifts")
	}
	return presenter.JSON(c, http.StatusOK, toGiftResponses(items))
}
