package models

import (
	"time"

	"github.com/google/uuid"
)

// Building belongs to a project. PositionData is a serialized polygon (or a
// legacy rect on old rows) outlining the building on the project's aerial
// image; it is owned by the building and parsed at the service boundary.
type Building struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	Name           string    `json:"name"`
	FrontViewImage *string   `json:"front_view_image"` // facade floors are banded on
	PositionData   *string   `json:"position_data"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
