package dtos

import "github.com/estatehq/sales-service/internal/models"

type CreateLeadRequest struct {
	Name        string  `json:"name" validate:"required"`
	Phone       string  `json:"phone" validate:"required"`
	ProjectID   *string `json:"project_id" validate:"omitempty,uuid"`
	ProjectName *string `json:"project_name"`
	UnitID      *string `json:"unit_id" validate:"omitempty,uuid"`
	UnitNumber  *string `json:"unit_number"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

type ListLeadsResponse struct {
	Leads []*models.Lead `json:"leads"`
}
