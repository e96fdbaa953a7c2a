package dtos

import "github.com/estatehq/sales-service/internal/geometry"

type DetectApartmentsRequest struct {
	ImageURL string `json:"image_url" validate:"required"`
}

// DetectedApartmentDTO is one AI-suggested unit outline, already validated
// and clamped into percentage space. Suggestions are never persisted
// directly; the admin accepts them through the normal unit create path.
type DetectedApartmentDTO struct {
	Polygon        geometry.Polygon `json:"polygon"`
	SuggestedRooms int              `json:"suggested_rooms"`
	SuggestedArea  float64          `json:"suggested_area"`
}

type DetectApartmentsResponse struct {
	Apartments []DetectedApartmentDTO `json:"apartments"`
}

type DetectFloorsRequest struct {
	ImageURL   string `json:"image_url" validate:"required"`
	FloorCount int    `json:"floor_count" validate:"required,min=1"`
}

type DetectedFloorDTO struct {
	FloorNumber int     `json:"floor_number"`
	YStart      float64 `json:"y_start"`
	YEnd        float64 `json:"y_end"`
}

type DetectFloorsResponse struct {
	Floors []DetectedFloorDTO `json:"floors"`
}

type TranslateRequest struct {
	Text          string   `json:"text" validate:"required"`
	SourceLocale  string   `json:"source_locale" validate:"required"`
	TargetLocales []string `json:"target_locales" validate:"required,min=1,dive,required"`
}

type TranslateResponse struct {
	Translations map[string]string `json:"translations"`
}
