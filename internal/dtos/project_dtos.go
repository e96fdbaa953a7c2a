package dtos

import "github.com/estatehq/sales-service/internal/models"

type CreateProjectRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	CoverImage   *string `json:"cover_image"`
	TopViewImage *string `json:"top_view_image"`
}

// UpdateProjectRequest uses pointers throughout: only fields present in the
// payload are applied, matching the admin UI's partial edits.
type UpdateProjectRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	CoverImage   *string `json:"cover_image"`
	TopViewImage *string `json:"top_view_image"`
}

// ProjectExploreResponse is the public aerial-view payload: each building
// with its normalized footprint, render path and label anchor, plus
// availability counts for the hover card.
type ProjectExploreResponse struct {
	Project   *models.Project        `json:"project"`
	Buildings []BuildingFootprintDTO `json:"buildings"`
}

type ListProjectsResponse struct {
	Projects []*models.Project `json:"projects"`
}
