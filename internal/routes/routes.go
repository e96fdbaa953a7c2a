package routes

const (
	// Health
	Health = "/health"

	// Public catalog endpoints
	Projects        = "/api/v1/projects"
	ProjectByID     = "/api/v1/projects/{id}"
	ProjectExplore  = "/api/v1/projects/{id}/explore"
	ProjectBuild    = "/api/v1/projects/{id}/buildings"
	BuildingByID    = "/api/v1/buildings/{id}"
	BuildingViewer  = "/api/v1/buildings/{id}/viewer"
	BuildingFloors  = "/api/v1/buildings/{id}/floors"
	FloorByID       = "/api/v1/floors/{id}"
	Units           = "/api/v1/units"
	UnitByID        = "/api/v1/units/{id}"
	Leads           = "/api/v1/leads"

	// Admin endpoints (JWT protected)
	AdminProjects       = "/api/v1/admin/projects"
	AdminProjectByID    = "/api/v1/admin/projects/{id}"
	AdminBuildings      = "/api/v1/admin/buildings"
	AdminBuildingByID   = "/api/v1/admin/buildings/{id}"
	AdminFloorPositions = "/api/v1/admin/buildings/{id}/floor-positions"
	AdminFloors         = "/api/v1/admin/floors"
	AdminFloorByID      = "/api/v1/admin/floors/{id}"
	AdminFloorCopy      = "/api/v1/admin/floors/{id}/copy-layout"
	AdminUnits          = "/api/v1/admin/units"
	AdminUnitByID       = "/api/v1/admin/units/{id}"
	AdminUnitStatus     = "/api/v1/admin/units/{id}/status"
	AdminLeads          = "/api/v1/admin/leads"
	AdminLeadByID       = "/api/v1/admin/leads/{id}"
	AdminLeadStatus     = "/api/v1/admin/leads/{id}/status"
	AdminUpload         = "/api/v1/admin/upload"

	// AI assists (admin only)
	AdminDetectApartments = "/api/v1/admin/ai/detect-apartments"
	AdminDetectFloors     = "/api/v1/admin/ai/detect-floors"
	AdminTranslate        = "/api/v1/admin/ai/translate"
)
