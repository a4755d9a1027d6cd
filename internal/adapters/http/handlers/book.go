package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwellapp/inkwell-server/internal/adapters/http/dto"
	"github.com/inkwellapp/inkwell-server/internal/app"
	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// BookHandler handles book-related HTTP endpoints.
type BookHandler struct {
	service *app.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(service *app.BookService) *BookHandler {
	return &BookHandler{
		service: service,
	}
}

// protectedBookFields are managed by the server and stripped from
// caller-supplied bodies: identifiers are store-assigned and the rating
// fields only change through rating submissions.
var protectedBookFields = []string{"_id", "id", "ratings", "rating"}

// toBookResponse converts a domain Book to its HTTP shape. Books are
// schema-flexible, so the response is built as an open map with the
// interpreted fields layered on top of any extra ones.
func toBookResponse(b *domain.Book) gin.H {
	resp := gin.H{}
	for k, v := range b.Extra {
		resp[k] = v
	}

	resp["id"] = b.ID

	if b.Title != "" {
		resp["title"] = b.Title
	}

	if b.Text != "" {
		resp["text"] = b.Text
	}

	if len(b.Ratings) > 0 {
		ratings := make([]gin.H, 0, len(b.Ratings))
		for _, entry := range b.Ratings {
			ratings = append(ratings, gin.H{"userId": entry.UserID, "rating": entry.Value})
		}

		resp["ratings"] = ratings
	}

	if b.AvgRating != "" {
		resp["rating"] = b.AvgRating
	}

	return resp
}

// ListBooks handles GET /books.
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := make([]gin.H, 0, len(books))
	for i := range books {
		resp = append(resp, toBookResponse(&books[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// GetBook handles GET /books/:id.
// A nonexistent id yields an empty object, not an error: the frontend
// renders "no such story" from an empty document.
func (h *BookHandler) GetBook(c *gin.Context) {
	book, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}

		dto.HandleError(c, err)

		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

// CreateBook handles POST /books.
// Book fields are entirely caller-controlled aside from the protected ones.
func (h *BookHandler) CreateBook(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "request body must be a JSON object")
		return
	}

	book := bookFromBody(body)

	id, err := h.service.Create(c.Request.Context(), book)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"acknowledged": true,
		"insertedId":   id,
	})
}

// ratingUpdateBody is the rating-submission variant of PUT /books/:id.
type ratingUpdateBody struct {
	UserID string  `json:"userId"`
	Rating float64 `json:"rating"`
}

// UpdateBook handles PUT /books/:id.
// A body carrying ratingUpdate submits a rating and returns the new
// average; any other body is a partial update of free-form fields.
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, "request body must be a JSON object")
		return
	}

	if raw, ok := body["ratingUpdate"]; ok {
		h.submitRating(c, raw)
		return
	}

	fields := body
	for _, key := range protectedBookFields {
		delete(fields, key)
	}

	if err := h.service.UpdateFields(c.Request.Context(), c.Param("id"), fields); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book updated"})
}

// submitRating handles the ratingUpdate variant of UpdateBook.
func (h *BookHandler) submitRating(c *gin.Context, raw any) {
	update, err := parseRatingUpdate(raw)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	avg, err := h.service.SubmitRating(c.Request.Context(), c.Param("id"), update.UserID, update.Rating)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "rating recorded",
		"avgRating": avg,
	})
}

// parseRatingUpdate extracts {userId, rating} from the already-decoded body.
func parseRatingUpdate(raw any) (*ratingUpdateBody, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, domain.NewValidationError("ratingUpdate", "must be an object")
	}

	userID, _ := obj["userId"].(string)

	rating, ok := obj["rating"].(float64)
	if !ok {
		return nil, domain.NewValidationError("ratingUpdate.rating", "must be a number")
	}

	// Rating values are deliberately not range-checked; clients send
	// whatever scale they render.
	return &ratingUpdateBody{UserID: userID, Rating: rating}, nil
}

// DeleteBook handles DELETE /books/:id.
// Deleting a nonexistent book reports zero entities affected.
func (h *BookHandler) DeleteBook(c *gin.Context) {
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

// bookFromBody builds a domain Book from a caller-supplied open body.
func bookFromBody(body map[string]any) *domain.Book {
	book := &domain.Book{Extra: map[string]any{}}

	for key, value := range body {
		switch key {
		case "title":
			if s, ok := value.(string); ok {
				book.Title = s
				continue
			}
		case "text":
			if s, ok := value.(string); ok {
				book.Text = s
				continue
			}
		}

		if isProtectedBookField(key) {
			continue
		}

		book.Extra[key] = value
	}

	return book
}

// isProtectedBookField reports whether callers may not set the field.
func isProtectedBookField(key string) bool {
	for _, protected := range protectedBookFields {
		if key == protected {
			return true
		}
	}

	return false
}
