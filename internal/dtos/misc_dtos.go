package dtos

type HealthResponse struct {
	Status string `json:"status"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}
