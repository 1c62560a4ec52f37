package booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bioscrap/internal/middleware"
	"bioscrap/internal/pkg/jwt"
	"bioscrap/internal/pkg/response"
	"bioscrap/internal/pkg/validator"
)

// Handler exposes the scrap selection pages and the booking wizard.
type Handler struct {
	service *Service
	tokens  *jwt.Service
}

func NewHandler(service *Service, tokens *jwt.Service) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func navigate(c *gin.Context, nav Navigation) {
	response.Navigate(c, http.StatusOK, response.Navigation{To: nav.To, State: nav.State})
}

// bindOptionalJSON accepts an empty body as the zero value.
func bindOptionalJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fieldErrs FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Please fix the highlighted fields", map[string]string(fieldErrs))
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusUnauthorized, "SESSION_NOT_FOUND", "Booking session has ended or expired")
	case errors.Is(err, ErrNotFinalStep):
		response.Error(c, http.StatusConflict, "NOT_FINAL_STEP", "Complete all steps before submitting")
	case errors.Is(err, ErrSubmissionInProgress):
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_PROGRESS", "Your booking is being submitted")
	case errors.Is(err, ErrSubmissionFailed):
		response.Error(c, http.StatusBadGateway, "SUBMISSION_FAILED", "Failed to submit the form. Please try again or contact support.")
	case errors.Is(err, ErrUnknownMaterial):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "UNKNOWN_MATERIAL", "Unknown scrap material", map[string]string{"material": "Unknown scrap material"})
	case errors.Is(err, ErrMaterialNotAccepted):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "MATERIAL_NOT_ACCEPTED", "This material is not accepted right now", map[string]string{"material": "Not accepting currently"})
	default:
		// ErrorLogger picks this up
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

// ToggleMaterial handles POST /api/v1/booking/scrap/materials/toggle
func (h *Handler) ToggleMaterial(c *gin.Context) {
	var req ToggleMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request", errs)
		return
	}

	sel, err := ToggleMaterial(req.Selected, req.Material)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, sel)
}

// ClearMaterials handles POST /api/v1/booking/scrap/materials/clear
func (h *Handler) ClearMaterials(c *gin.Context) {
	response.Success(c, http.StatusOK, ClearMaterials())
}

// ContinueMaterials handles POST /api/v1/booking/scrap/materials/continue
func (h *Handler) ContinueMaterials(c *gin.Context) {
	var req ContinueMaterialsRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	nav, err := ContinueFromMaterials(req.Selected)
	if err != nil {
		h.fail(c, err)
		return
	}
	navigate(c, nav)
}

// EnterWeight handles POST /api/v1/booking/scrap/weight
// The body is the navigation state the materials page forwarded.
func (h *Handler) EnterWeight(c *gin.Context) {
	var state NavState
	if !bindOptionalJSON(c, &state) {
		return
	}
	page, redirect := EnterWeightPage(state)
	if redirect != nil {
		navigate(c, *redirect)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ContinueWeight handles POST /api/v1/booking/scrap/weight/continue
func (h *Handler) ContinueWeight(c *gin.Context) {
	var state NavState
	if !bindOptionalJSON(c, &state) {
		return
	}
	nav, err := ContinueFromWeight(state)
	if err != nil {
		h.fail(c, err)
		return
	}
	navigate(c, nav)
}

// BackFromWeight handles POST /api/v1/booking/scrap/weight/back
func (h *Handler) BackFromWeight(c *gin.Context) {
	navigate(c, BackFromWeight())
}

// StartSession handles POST /api/v1/booking/{waste|scrap}/sessions
// Scrap mounts may answer with a redirect instead of a session.
func (h *Handler) StartSession(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		var state NavState
		if !bindOptionalJSON(c, &state) {
			return
		}

		view, redirect, err := h.service.Start(c.Request.Context(), mode, state)
		if err != nil {
			h.fail(c, err)
			return
		}
		if redirect != nil {
			navigate(c, *redirect)
			return
		}

		token, err := h.tokens.GenerateToken(view.SessionID, string(view.Mode))
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Success(c, http.StatusCreated, StartSessionResponse{
			Token:     token,
			ExpiresAt: view.ExpiresAt,
			Session:   view,
		})
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(middleware.ContextSessionID)
}

// GetSession handles GET /api/v1/booking/session
func (h *Handler) GetSession(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// UpdateDraft handles PATCH /api/v1/booking/session/draft
func (h *Handler) UpdateDraft(c *gin.Context) {
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	view, err := h.service.UpdateDraft(c.Request.Context(), sessionID(c), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Next handles POST /api/v1/booking/session/next
func (h *Handler) Next(c *gin.Context) {
	view, err := h.service.Next(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Prev handles POST /api/v1/booking/session/prev
func (h *Handler) Prev(c *gin.Context) {
	view, nav, err := h.service.Prev(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if nav != nil {
		navigate(c, *nav)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// SetPin handles POST /api/v1/booking/session/location/pin
func (h *Handler) SetPin(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid coordinates", errs)
		return
	}

	res, err := h.service.SetPin(c.Request.Context(), sessionID(c), *req.Latitude, *req.Longitude)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// SearchLocation handles POST /api/v1/booking/session/location/search
func (h *Handler) SearchLocation(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	res, err := h.service.SearchLocation(c.Request.Context(), sessionID(c), req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Submit handles POST /api/v1/booking/session/submit
func (h *Handler) Submit(c *gin.Context) {
	confirmation, err := h.service.Submit(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, confirmation)
}

// Abandon handles DELETE /api/v1/booking/session
func (h *Handler) Abandon(c *gin.Context) {
	if err := h.service.Abandon(c.Request.Context(), sessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, AbandonResponse{Discarded: true})
}

// Receipt handles POST /api/v1/booking/receipt
// It renders the snapshot a confirmation handed out; nothing is looked up.
func (h *Handler) Receipt(c *gin.Context) {
	var snap Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&snap); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid receipt data", errs)
		return
	}
	response.Success(c, http.StatusOK, RenderReceipt(snap))
}
