package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/services"
	"github.com/estatehq/sales-service/internal/utils"
)

type FloorController struct {
	floorService *services.FloorService
}

func NewFloorController(fs *services.FloorService) *FloorController {
	return &FloorController{floorService: fs}
}

var floorValidate = validator.New()

// POST /api/v1/admin/floors
func (c *FloorController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateFloorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := floorValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", validationErrors.Error(), err)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	f, err := c.floorService.Create(ctx, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, f)
}

// GET /api/v1/floors/{id}
// Floor plus its units in render-ready form.
func (c *FloorController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	resp, err := c.floorService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/buildings/{id}/floors
func (c *FloorController) ListByBuildingHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	floors, err := c.floorService.ListByBuilding(r.Context(), buildingID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListFloorsResponse{Floors: floors})
}

// PUT /api/v1/admin/floors/{id}
func (c *FloorController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateFloorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}

	f, err := c.floorService.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, f)
}

// DELETE /api/v1/admin/floors/{id}
func (c *FloorController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.floorService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DeleteResponse{Success: true})
}

// POST /api/v1/admin/floors/{id}/copy-layout
// Replicates the floor's plan image and units onto every sibling floor.
func (c *FloorController) CopyLayoutHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	resp, err := c.floorService.CopyLayoutToAll(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
