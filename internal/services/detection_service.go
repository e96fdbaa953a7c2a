package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/geometry"
	"github.com/estatehq/sales-service/internal/utils"
)

// detectedApartment mirrors the expected JSON from the vision model. All
// coordinates are percentages of the plan image.
type detectedApartment struct {
	Polygon []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"polygon"`
	Rooms int     `json:"rooms"`
	Area  float64 `json:"area"`
}

type detectedApartments struct {
	Apartments []detectedApartment `json:"apartments"`
}

type detectedBand struct {
	FloorIndex int     `json:"floor_index"`
	YStart     float64 `json:"y_start"`
	YEnd       float64 `json:"y_end"`
}

type detectedBands struct {
	Floors []detectedBand `json:"floors"`
}

// DetectionService wraps OpenAI vision calls that pre-draw outlines for the
// admin editor. If client is nil the feature is disabled and calls fail with
// a 503 so the editor falls back to manual drawing.
type DetectionService struct {
	client    *openai.Client
	uploadDir string
}

// NewDetectionService creates the service. Pass an empty apiKey to disable
// detection. uploadDir resolves site-relative image paths to local files.
func NewDetectionService(apiKey, uploadDir string) *DetectionService {
	if apiKey == "" {
		return &DetectionService{uploadDir: uploadDir}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &DetectionService{client: &c, uploadDir: uploadDir}
}

// DetectApartments asks the vision model to outline each apartment on a
// floor plan image. Results are clamped to percentage space; polygons with
// fewer than three points are dropped.
func (s *DetectionService) DetectApartments(ctx context.Context, req dtos.DetectApartmentsRequest) (*dtos.DetectApartmentsResponse, error) {
	if s.client == nil {
		return nil, detectionDisabledErr()
	}

	imageURL, err := s.resolveImageURL(req.ImageURL)
	if err != nil {
		return nil, err
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"apartments": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"polygon": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"x": map[string]string{"type": "number"},
									"y": map[string]string{"type": "number"},
								},
								"required":             []string{"x", "y"},
								"additionalProperties": false,
							},
						},
						"rooms": map[string]string{"type": "integer"},
						"area":  map[string]string{"type": "number"},
					},
					"required":             []string{"polygon", "rooms", "area"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"apartments"},
		"additionalProperties": false,
	}

	fn := shared.FunctionDefinitionParam{
		Name:        "report_apartments",
		Description: openai.String("Report every apartment outline found on the floor plan."),
		Strict:      openai.Bool(true),
		Parameters:  schema,
	}

	prompt := `Outline every separate apartment on this floor plan.

Return JSON by calling report_apartments(strict).
Rules:
1. Coordinates are percentages of the image: x in [0,100] left to right, y in [0,100] top to bottom.
2. Each polygon traces one apartment's walls with at least 3 points.
3. rooms = count of living rooms + bedrooms visible inside the outline; 0 if unreadable.
4. area = the square meters printed on the plan for that apartment; 0 if not printed.

Skip corridors, stairwells, elevator shafts and shared spaces.`

	raw, err := s.callVision(ctx, "report_apartments", fn, prompt, imageURL)
	if err != nil {
		return nil, err
	}

	var parsed detectedApartments
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal detected apartments: %w", err)
	}

	resp := dtos.DetectApartmentsResponse{Apartments: []dtos.DetectedApartmentDTO{}}
	for _, a := range parsed.Apartments {
		poly := make(geometry.Polygon, 0, len(a.Polygon))
		for _, p := range a.Polygon {
			poly = append(poly, geometry.Point{X: p.X, Y: p.Y})
		}
		poly = poly.Clamp()
		if !poly.Valid() {
			continue
		}
		rooms := a.Rooms
		if rooms < 0 {
			rooms = 0
		}
		area := a.Area
		if area < 0 {
			area = 0
		}
		resp.Apartments = append(resp.Apartments, dtos.DetectedApartmentDTO{
			Polygon:        poly,
			SuggestedRooms: rooms,
			SuggestedArea:  area,
		})
	}
	return &resp, nil
}

// DetectFloorBands asks the vision model to split a facade photo into
// horizontal floor bands. The model's bands are clamped and re-ordered; if
// it returns the wrong count the equal-band fallback is used instead.
func (s *DetectionService) DetectFloorBands(ctx context.Context, req dtos.DetectFloorsRequest) (*dtos.DetectFloorsResponse, error) {
	if s.client == nil {
		return nil, detectionDisabledErr()
	}

	imageURL, err := s.resolveImageURL(req.ImageURL)
	if err != nil {
		return nil, err
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"floors": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"floor_index": map[string]string{"type": "integer"},
						"y_start":     map[string]string{"type": "number"},
						"y_end":       map[string]string{"type": "number"},
					},
					"required":             []string{"floor_index", "y_start", "y_end"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"floors"},
		"additionalProperties": false,
	}

	fn := shared.FunctionDefinitionParam{
		Name:        "report_floor_bands",
		Description: openai.String("Report the vertical band of each floor on the building facade."),
		Strict:      openai.Bool(true),
		Parameters:  schema,
	}

	prompt := fmt.Sprintf(`This facade photo shows a building with %d floors.

Return JSON by calling report_floor_bands(strict).
Rules:
1. y_start and y_end are percentages of image height, 0 at the top.
2. floor_index 0 is the TOP visible floor, increasing downwards.
3. Bands must not overlap and y_end > y_start for every band.
4. Return exactly %d bands.`, req.FloorCount, req.FloorCount)

	raw, err := s.callVision(ctx, "report_floor_bands", fn, prompt, imageURL)
	if err != nil {
		return nil, err
	}

	var parsed detectedBands
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal detected bands: %w", err)
	}

	bands := make([]geometry.FloorBand, 0, len(parsed.Floors))
	for _, b := range parsed.Floors {
		band := geometry.NormalizeBand(b.YStart, b.YEnd)
		if !band.Valid() {
			bands = nil
			break
		}
		bands = append(bands, band)
	}
	if len(bands) != req.FloorCount {
		bands = geometry.DistributeBands(req.FloorCount)
	}

	resp := dtos.DetectFloorsResponse{Floors: make([]dtos.DetectedFloorDTO, 0, len(bands))}
	for i, band := range bands {
		resp.Floors = append(resp.Floors, dtos.DetectedFloorDTO{
			// bands run top-down; the top band is the highest floor
			FloorNumber: req.FloorCount - i,
			YStart:      band.YStart,
			YEnd:        band.YEnd,
		})
	}
	return &resp, nil
}

/* ---------- internals ---------- */

func (s *DetectionService) callVision(ctx context.Context, fnName string, fn shared.FunctionDefinitionParam, prompt, imageURL string) ([]byte, error) {
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						openai.TextContentPart(prompt),
						openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
							URL:    imageURL,
							Detail: "high",
						}),
					},
				},
			},
		}},
		Tools: []openai.ChatCompletionToolParam{{
			Function: fn,
		}},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfChatCompletionNamedToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
					Name: fnName,
				},
			},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "vision detection failed",
			Err:        fmt.Errorf("openai: %w", err),
		}
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, &utils.AppError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "vision detection failed",
			Err:        fmt.Errorf("openai: no function call returned"),
		}
	}
	return []byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments), nil
}

// resolveImageURL turns a stored image reference into something the vision
// API can fetch. Absolute http(s) URLs pass through; site-relative upload
// paths are read from disk and inlined as a data URL.
func (s *DetectionService) resolveImageURL(ref string) (string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	if !strings.HasPrefix(ref, "/") {
		return "", &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidPayload, Message: "image_url must be absolute or a site-relative upload path"}
	}

	local := filepath.Join(s.uploadDir, filepath.Base(ref))
	data, err := os.ReadFile(local)
	if err != nil {
		return "", &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeInvalidPayload, Message: "image not found", Err: err}
	}

	mime := "image/jpeg"
	switch strings.ToLower(filepath.Ext(local)) {
	case ".png":
		mime = "image/png"
	case ".webp":
		mime = "image/webp"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func detectionDisabledErr() error {
	return &utils.AppError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       utils.ErrCodeExternalServiceFailure,
		Message:    "AI detection is not configured",
		Err:        utils.ErrExternalServiceFailure,
	}
}
