package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/repositories"
	"github.com/estatehq/sales-service/internal/utils"
)

type BuildingService struct {
	buildingRepo repositories.BuildingRepository
	projectRepo  repositories.ProjectRepository
	floorRepo    repositories.FloorRepository
}

func NewBuildingService(
	buildingRepo repositories.BuildingRepository,
	projectRepo repositories.ProjectRepository,
	floorRepo repositories.FloorRepository,
) *BuildingService {
	return &BuildingService{buildingRepo: buildingRepo, projectRepo: projectRepo, floorRepo: floorRepo}
}

func (s *BuildingService) Create(ctx context.Context, req dtos.CreateBuildingRequest) (*models.Building, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidPayload, Message: "invalid project id", Err: err}
	}
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if p == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "project not found"}
	}

	position, err := normalizePolygonBlob(req.PositionData)
	if err != nil {
		return nil, err
	}

	b := models.Building{
		ID:             uuid.New(),
		ProjectID:      projectID,
		Name:           req.Name,
		FrontViewImage: req.FrontViewImage,
		PositionData:   position,
		SortOrder:      req.SortOrder,
	}
	if err := s.buildingRepo.Create(ctx, &b); err != nil {
		return nil, fmt.Errorf("create building: %w", err)
	}
	return &b, nil
}

func (s *BuildingService) Get(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	b, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load building: %w", err)
	}
	if b == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "building not found"}
	}
	return b, nil
}

func (s *BuildingService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Building, error) {
	return s.buildingRepo.ListByProjectID(ctx, projectID)
}

func (s *BuildingService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateBuildingRequest) (*models.Building, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.FrontViewImage != nil {
		b.FrontViewImage = req.FrontViewImage
	}
	if req.SortOrder != nil {
		b.SortOrder = *req.SortOrder
	}
	if req.PositionData != nil {
		position, err := normalizePolygonBlob(req.PositionData)
		if err != nil {
			return nil, err
		}
		b.PositionData = position
	}

	if err := s.buildingRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update building: %w", err)
	}
	return b, nil
}

func (s *BuildingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.buildingRepo.Delete(ctx, id)
}

// Viewer assembles the public facade payload for one building: every floor
// mapped to a clickable vertical band on the front view image.
func (s *BuildingService) Viewer(ctx context.Context, id uuid.UUID) (*dtos.BuildingViewerResponse, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	floors, err := s.floorRepo.ListByBuildingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	return &dtos.BuildingViewerResponse{
		Building: b,
		Bands:    resolveBands(floors),
	}, nil
}
