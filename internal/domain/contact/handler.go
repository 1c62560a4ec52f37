package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bioscrap/internal/pkg/response"
	"bioscrap/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/v1/contact (public)
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Please fix the highlighted fields", messagesFor(errs))
		return
	}

	res, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrSendFailed) {
			response.ErrorWithDetails(c, http.StatusBadGateway, "SEND_FAILED",
				"Failed to send message. Please try again later.", map[string]string{"reason": err.Error()})
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}

	response.Success(c, http.StatusOK, res)
}

// messagesFor turns failed validation tags into form messages.
func messagesFor(failed map[string]string) map[string]string {
	out := make(map[string]string, len(failed))
	for field, tag := range failed {
		if tag == "max" {
			if msg, ok := tooLongMessages[field]; ok {
				out[field] = msg
				continue
			}
		}
		if msg, ok := fieldMessages[field]; ok {
			out[field] = msg
			continue
		}
		out[field] = tag
	}
	return out
}
