package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a residential development: the top of the ownership chain
// (project → building → floor → unit).
type Project struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Address      *string   `json:"address"`
	CoverImage   *string   `json:"cover_image"`
	TopViewImage *string   `json:"top_view_image"` // aerial photo buildings are outlined on
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
