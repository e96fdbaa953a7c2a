package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/services"
	"github.com/estatehq/sales-service/internal/utils"
)

type AIController struct {
	detectionService   *services.DetectionService
	translationService *services.TranslationService
}

func NewAIController(ds *services.DetectionService, ts *services.TranslationService) *AIController {
	return &AIController{detectionService: ds, translationService: ts}
}

var aiValidate = validator.New()

// POST /api/v1/admin/ai/detect-apartments
func (c *AIController) DetectApartmentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.DetectApartmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := aiValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "image_url is required", nil, err)
		return
	}

	resp, err := c.detectionService.DetectApartments(ctx, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/admin/ai/detect-floors
func (c *AIController) DetectFloorsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.DetectFloorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := aiValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	resp, err := c.detectionService.DetectFloorBands(ctx, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/admin/ai/translate
func (c *AIController) TranslateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := aiValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	resp, err := c.translationService.Translate(ctx, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
