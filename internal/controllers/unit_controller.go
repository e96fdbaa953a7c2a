package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/services"
	"github.com/estatehq/sales-service/internal/utils"
)

type UnitController struct {
	unitService *services.UnitService
}

func NewUnitController(us *services.UnitService) *UnitController {
	return &UnitController{unitService: us}
}

var unitValidate = validator.New()

// POST /api/v1/admin/units
func (c *UnitController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dtos.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := unitValidate.StructCtx(ctx, req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", validationErrors.Error(), err)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	u, err := c.unitService.Create(ctx, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, u)
}

// GET /api/v1/units/{id}
func (c *UnitController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	u, err := c.unitService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// GET /api/v1/units
// Filters arrive as query params; price bounds apply to the resolved price.
func (c *UnitController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q, err := parseListUnitsQuery(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	units, err := c.unitService.List(r.Context(), q)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListUnitsResponse{Units: units})
}

// PUT /api/v1/admin/units/{id}
func (c *UnitController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := unitValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	u, err := c.unitService.Update(ctx, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// PUT /api/v1/admin/units/{id}/status
func (c *UnitController) ChangeStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := unitValidate.StructCtx(ctx, req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", nil, err)
		return
	}

	u, err := c.unitService.ChangeStatus(ctx, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// DELETE /api/v1/admin/units/{id}
func (c *UnitController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.unitService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DeleteResponse{Success: true})
}

/* ---------- query parsing ---------- */

func parseListUnitsQuery(r *http.Request) (dtos.ListUnitsQuery, error) {
	var q dtos.ListUnitsQuery
	vals := r.URL.Query()

	for name, dst := range map[string]**uuid.UUID{
		"floor_id":    &q.FloorID,
		"building_id": &q.BuildingID,
		"project_id":  &q.ProjectID,
	} {
		if s := vals.Get(name); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return q, errors.New("invalid " + name)
			}
			*dst = &id
		}
	}

	if s := vals.Get("status"); s != "" {
		q.Status = &s
	}
	if s := vals.Get("rooms"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, errors.New("invalid rooms")
		}
		q.Rooms = &n
	}
	if s := vals.Get("min_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, errors.New("invalid min_price")
		}
		q.MinPrice = &v
	}
	if s := vals.Get("max_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, errors.New("invalid max_price")
		}
		q.MaxPrice = &v
	}

	if s := vals.Get("sort"); s != "" {
		key := s
		if strings.HasPrefix(s, "-") {
			key = s[1:]
			q.SortDesc = true
		}
		switch key {
		case dtos.SortUnitsByPrice, dtos.SortUnitsByArea, dtos.SortUnitsByNumber:
			q.SortKey = key
		default:
			return q, errors.New("invalid sort")
		}
	}
	return q, nil
}
