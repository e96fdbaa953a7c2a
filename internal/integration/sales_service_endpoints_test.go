//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/models"
	"github.com/estatehq/sales-service/internal/routes"
)

// Runs against a live instance:
//
//	BASE_URL=http://localhost:8080 JWT_SECRET=... go test -tags integration ./internal/integration/
var (
	baseURL    string
	adminToken string
	client     = &http.Client{Timeout: 15 * time.Second}
)

func TestMain(m *testing.M) {
	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("JWT_SECRET is required for integration tests")
		os.Exit(1)
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "integration-admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		fmt.Println("failed to sign admin token:", err)
		os.Exit(1)
	}
	adminToken = signed

	os.Exit(m.Run())
}

func doJSON(t *testing.T, method, url string, body any, auth bool) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthCheck(t *testing.T) {
	resp := doJSON(t, http.MethodGet, baseURL+routes.Health, nil, false)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminEndpointsRejectAnonymous(t *testing.T) {
	resp := doJSON(t, http.MethodPost, baseURL+routes.AdminProjects, dtos.CreateProjectRequest{Name: "x"}, false)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Full catalog round trip: project -> building -> floor -> unit, lifecycle,
// then cleanup by deleting the project (everything cascades).
func TestCatalogLifecycle(t *testing.T) {
	// project
	resp := doJSON(t, http.MethodPost, baseURL+routes.AdminProjects, dtos.CreateProjectRequest{
		Name: fmt.Sprintf("it-project-%d", time.Now().UnixNano()),
	}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	project := decode[models.Project](t, resp)

	defer func() {
		resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/admin/projects/%s", baseURL, project.ID), nil, true)
		resp.Body.Close()
	}()

	// building with a drawn footprint
	footprint := `[{"x":10,"y":10},{"x":40,"y":10},{"x":40,"y":50},{"x":10,"y":50}]`
	resp = doJSON(t, http.MethodPost, baseURL+routes.AdminBuildings, dtos.CreateBuildingRequest{
		ProjectID:    project.ID.String(),
		Name:         "Tower IT",
		PositionData: &footprint,
	}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	building := decode[models.Building](t, resp)

	// two floors
	var floorIDs []string
	for n := 1; n <= 2; n++ {
		resp = doJSON(t, http.MethodPost, baseURL+routes.AdminFloors, dtos.CreateFloorRequest{
			BuildingID: building.ID.String(),
			Number:     n,
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		f := decode[models.Floor](t, resp)
		floorIDs = append(floorIDs, f.ID.String())
	}

	// unit on floor 1, priced by explicit rate
	rate := 1500.0
	rect := `{"x":5,"y":5,"width":20,"height":25}`
	resp = doJSON(t, http.MethodPost, baseURL+routes.AdminUnits, dtos.CreateUnitRequest{
		FloorID:     floorIDs[0],
		UnitNumber:  "101",
		Rooms:       2,
		Area:        50,
		PricePerM2:  &rate,
		PolygonData: &rect,
	}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	unit := decode[dtos.UnitDTO](t, resp)
	require.Equal(t, 75000.0, unit.Price)
	require.Len(t, unit.Polygon, 4) // legacy rect normalized on the way in

	// sale without a customer name fails
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/v1/admin/units/%s/status", baseURL, unit.ID),
		dtos.ChangeStatusRequest{Status: models.StatusSold}, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	name := "Integration Buyer"
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/v1/admin/units/%s/status", baseURL, unit.ID),
		dtos.ChangeStatusRequest{Status: models.StatusSold, CustomerName: &name}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sold := decode[dtos.UnitDTO](t, resp)
	require.Equal(t, models.StatusSold, sold.Status)
	require.NotNil(t, sold.StatusChangedAt)

	// copy layout from floor 1 to floor 2
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/v1/admin/floors/%s/copy-layout", baseURL, floorIDs[0]), nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	copied := decode[dtos.CopyLayoutResponse](t, resp)
	require.Equal(t, 1, copied.CopiedFloors)
	require.Equal(t, 1, copied.CopiedUnits)

	// public viewer resolves a band for every floor
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/buildings/%s/viewer", baseURL, building.ID), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	viewer := decode[dtos.BuildingViewerResponse](t, resp)
	require.Len(t, viewer.Bands, 2)
	require.Equal(t, 2, viewer.Bands[0].Number) // top floor first

	// public explore lists the footprint with availability counts
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/projects/%s/explore", baseURL, project.ID), nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	explore := decode[dtos.ProjectExploreResponse](t, resp)
	require.Len(t, explore.Buildings, 1)
	require.Equal(t, 2, explore.Buildings[0].UnitsTotal)
	require.Equal(t, 1, explore.Buildings[0].UnitsAvailable)
	require.NotEmpty(t, explore.Buildings[0].Path)
}

func TestLeadCapture(t *testing.T) {
	resp := doJSON(t, http.MethodPost, baseURL+routes.Leads, dtos.CreateLeadRequest{
		Name:  "Integration Lead",
		Phone: "+998900000000",
	}, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	lead := decode[models.Lead](t, resp)
	require.Equal(t, models.LeadStatusNew, lead.Status)

	defer func() {
		resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/admin/leads/%s", baseURL, lead.ID), nil, true)
		resp.Body.Close()
	}()

	// missing phone rejected
	resp = doJSON(t, http.MethodPost, baseURL+routes.Leads, dtos.CreateLeadRequest{Name: "No Phone"}, false)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// admin moves it through the CRM states
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/v1/admin/leads/%s/status", baseURL, lead.ID),
		dtos.UpdateLeadStatusRequest{Status: models.LeadStatusContacted}, true)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}
