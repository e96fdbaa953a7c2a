package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/geometry"
	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/repositories"
	"github.com/estatehq/sales-service/internal/utils"
)

type ProjectService struct {
	projectRepo  repositories.ProjectRepository
	buildingRepo repositories.BuildingRepository
	floorRepo    repositories.FloorRepository
	unitRepo     repositories.UnitRepository
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	buildingRepo repositories.BuildingRepository,
	floorRepo repositories.FloorRepository,
	unitRepo repositories.UnitRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		buildingRepo: buildingRepo,
		floorRepo:    floorRepo,
		unitRepo:     unitRepo,
	}
}

func (s *ProjectService) Create(ctx context.Context, req dtos.CreateProjectRequest) (*models.Project, error) {
	p := models.Project{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		CoverImage:   req.CoverImage,
		TopViewImage: req.TopViewImage,
	}
	if err := s.projectRepo.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &p, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if p == nil {
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "project not found"}
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateProjectRequest) (*models.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Address != nil {
		p.Address = req.Address
	}
	if req.CoverImage != nil {
		p.CoverImage = req.CoverImage
	}
	if req.TopViewImage != nil {
		p.TopViewImage = req.TopViewImage
	}

	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}

// Explore builds the public aerial-view payload: each building's outline on
// the top view image plus availability counts for the hover card. Buildings
// whose stored geometry does not parse are included without a footprint.
func (s *ProjectService) Explore(ctx context.Context, id uuid.UUID) (*dtos.ProjectExploreResponse, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	buildings, err := s.buildingRepo.ListByProjectID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}

	out := dtos.ProjectExploreResponse{Project: p, Buildings: make([]dtos.BuildingFootprintDTO, 0, len(buildings))}
	for _, b := range buildings {
		dto, err := s.buildingFootprint(ctx, b)
		if err != nil {
			return nil, err
		}
		out.Buildings = append(out.Buildings, dto)
	}
	return &out, nil
}

func (s *ProjectService) buildingFootprint(ctx context.Context, b *models.Building) (dtos.BuildingFootprintDTO, error) {
	dto := dtos.BuildingFootprintDTO{
		BuildingID: b.ID,
		Name:       b.Name,
	}

	if poly := geometry.ParsePolygon(b.PositionData); poly != nil {
		dto.Footprint = poly
		dto.Path = poly.PathString()
		dto.LabelAnchor = poly.Centroid()
	}

	floors, err := s.floorRepo.ListByBuildingID(ctx, b.ID)
	if err != nil {
		return dto, fmt.Errorf("list floors: %w", err)
	}
	dto.FloorCount = len(floors)

	units, err := s.unitRepo.ListWithFloor(ctx, repositories.UnitFilter{BuildingID: &b.ID})
	if err != nil {
		return dto, fmt.Errorf("list units: %w", err)
	}
	dto.UnitsTotal = len(units)
	for _, u := range units {
		if u.Status == models.StatusAvailable {
			dto.UnitsAvailable++
		}
	}
	return dto, nil
}
