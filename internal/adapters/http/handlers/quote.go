package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkwellapp/inkwell-server/internal/adapters/http/dto"
	"github.com/inkwellapp/inkwell-server/internal/app"
	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// quoteResponse is the HTTP shape of a quote.
type quoteResponse struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Author    string         `json:"author"`
	Category  string         `json:"category"`
	Likes     domain.LikeSet `json:"likes"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toQuoteResponse(q *domain.Quote) quoteResponse {
	likes := q.Likes
	if likes == nil {
		likes = domain.LikeSet{}
	}

	return quoteResponse{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		Category:  q.Category,
		Likes:     likes,
		CreatedAt: q.CreatedAt,
	}
}

// ListQuotes handles GET /quotes.
// Quotes come back newest-first; ?category= narrows the result.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := make([]quoteResponse, 0, len(quotes))
	for i := range quotes {
		resp = append(resp, toQuoteResponse(&quotes[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// createQuoteRequest is the POST /quotes body.
type createQuoteRequest struct {
	Text     string `json:"text"     validate:"required,notempty"`
	Author   string `json:"author"   validate:"required,notempty"`
	Category string `json:"category" validate:"required,notempty"`
}

// CreateQuote handles POST /quotes.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req createQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		if fieldErrors := dto.ValidationErrors(err); len(fieldErrors) > 0 {
			dto.HandleValidationErrors(c, fieldErrors)
			return
		}

		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "request body must be a JSON object")

		return
	}

	id, err := h.service.Create(c.Request.Context(), req.Text, req.Author, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"acknowledged": true,
		"insertedId":   id,
	})
}

// toggleLikeRequest is the PUT /quotes/:id/like body.
type toggleLikeRequest struct {
	UserID string `json:"userId"`
}

// ToggleLike handles PUT /quotes/:id/like.
// A user's first like adds them to the set; liking again removes them.
func (h *QuoteHandler) ToggleLike(c *gin.Context) {
	var req toggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "request body must be a JSON object")
		return
	}

	count, err := h.service.ToggleLike(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likesCount": count})
}

// DeleteQuote handles DELETE /quotes/:id.
// Deleting a nonexistent quote reports zero entities affected.
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"deletedCount": deleted,
	})
}
