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

type BuildingController struct {
	buildingService *services.BuildingService
	floorService    *services.FloorService
}

func NewBuildingController(bs *services.BuildingService, fs *services.FloorService) *BuildingController {
	return &BuildingController{buildingService: bs, floorService: fs}
}

var buildingValidate = validator.New()

// POST /api/v1/admin/buildings
func (c *BuildingController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := buildingValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", validationErrors.Error(), err)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	b, err := c.buildingService.Create(ctx, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, b)
}

// GET /api/v1/buildings/{id}
func (c *BuildingController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	b, err := c.buildingService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// GET /api/v1/projects/{id}/buildings
func (c *BuildingController) ListByProjectHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	buildings, err := c.buildingService.ListByProject(r.Context(), projectID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListBuildingsResponse{Buildings: buildings})
}

// GET /api/v1/buildings/{id}/viewer
func (c *BuildingController) ViewerHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	resp, err := c.buildingService.Viewer(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PUT /api/v1/admin/buildings/{id}
func (c *BuildingController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}

	b, err := c.buildingService.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// DELETE /api/v1/admin/buildings/{id}
func (c *BuildingController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.buildingService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DeleteResponse{Success: true})
}

// PUT /api/v1/admin/buildings/{id}/floor-positions
// Batch write of the facade editor's authored bands.
func (c *BuildingController) BatchFloorPositionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buildingID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.BatchFloorPositionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := buildingValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	updated, err := c.floorService.BatchUpdatePositions(ctx, buildingID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.BatchFloorPositionsResponse{Updated: updated})
}
