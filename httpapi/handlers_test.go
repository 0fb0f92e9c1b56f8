package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/ai/mock"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/search"
	"github.com/poiesic/servit/storage/badger"
)

// newTestServer wires a server over an in-memory catalog whose vectors
// live in a hand-built 3-dimensional space. The mock embedder points every
// probe at the AC cluster, so result order is fixed.
func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	ctx := context.Background()

	serviceRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		serviceRepo.Close()
		backend.Close()
	})

	records := []*core.ServiceRecord{
		{
			Position: 0,
			Name:     "Cool Care AC Repair",
			Category: "AC Repair",
			Address:  "Plot 12, Madhapur, Hyderabad, Telangana 500081",
			Phone:    "9876543210",
			Location: "Hyderabad",
			Price:    "₹450",
			Rating:   "4.5 ⭐",
			Vector:   []float32{0.9, 0.1, 0.0},
		},
		{
			Position: 1,
			Name:     "Arctic Services",
			Category: "AC Repair",
			Address:  "Plot 34, Gachibowli, Hyderabad, Telangana 500032",
			Location: "Hyderabad",
			Price:    "Contact for price",
			Rating:   "4.2 ⭐",
			Vector:   []float32{0.85, 0.15, 0.0},
		},
		{
			Position: 2,
			Name:     "AquaFix Plumbing",
			Category: "Plumber",
			Address:  "Shop 3, Andheri, Mumbai, Maharashtra 400058",
			Location: "Mumbai",
			Price:    "₹300",
			Rating:   "4.0 ⭐",
			Vector:   []float32{0.1, 0.9, 0.0},
		},
		{
			Position: 3,
			Name:     "Spice Garden",
			Category: "Restaurant",
			Address:  "Plot 7, Banjara Hills, Hyderabad, Telangana 500034",
			Location: "Hyderabad",
			Price:    "₹800",
			Rating:   "4.6 ⭐",
			Vector:   []float32{0.1, 0.1, 0.9},
		},
	}
	for _, record := range records {
		record.Id = core.ServiceIDFor(int(record.Position), record.Name)
	}
	_, err = serviceRepo.AddServiceRecords(ctx, records...)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{0.9, 0.1, 0.0}, nil
	}

	searcher, err := search.NewSearcher(serviceRepo, embedder)
	require.NoError(t, err)

	server, err := NewServer(searcher, serviceRepo, opts...)
	require.NoError(t, err)
	return server
}

// get performs a GET against the server's router and decodes the JSON body
// into out when it is non-nil.
func get(t *testing.T, server *Server, target string, out any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestNewServer(t *testing.T) {
	server := newTestServer(t)

	t.Run("nil searcher", func(t *testing.T) {
		_, err := NewServer(nil, server.records)
		assert.Equal(t, ErrSearcherRequired, err)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewServer(server.searcher, nil)
		assert.Equal(t, ErrServiceRepositoryRequired, err)
	})
}

func TestHandleSearch(t *testing.T) {
	server := newTestServer(t)

	var resp searchResponse
	rec := get(t, server, "/api/search?q=ac+repair", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ac repair", resp.Query)
	assert.Equal(t, 4, resp.Count)
	require.Len(t, resp.Services, 4)
	assert.Equal(t, "Cool Care AC Repair", resp.Services[0].Name)
	assert.Equal(t, "Arctic Services", resp.Services[1].Name)
	assert.Empty(t, resp.Services[0].DistanceText)
	assert.Empty(t, resp.Recommendation)
	assert.Empty(t, resp.RecommendationError)
}

func TestHandleSearch_BadParams(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		target string
	}{
		{"missing query", "/api/search"},
		{"bad max_price", "/api/search?q=ac&max_price=cheap"},
		{"bad limit", "/api/search?q=ac&limit=five"},
		{"lat without lon", "/api/search?q=ac&lat=17.38"},
		{"bad lat", "/api/search?q=ac&lat=north&lon=78.48"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp errorResponse
			rec := get(t, server, tt.target, &resp)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleSearch_Filters(t *testing.T) {
	server := newTestServer(t)

	var resp searchResponse
	rec := get(t, server, "/api/search?q=fix+my+tap&category=Plumber", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "AquaFix Plumbing", resp.Services[0].Name)
}

func TestHandleSearch_Limit(t *testing.T) {
	server := newTestServer(t)

	var resp searchResponse
	rec := get(t, server, "/api/search?q=ac+repair&limit=2", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, resp.Count)
}

func TestHandleSearch_WithCoordinates(t *testing.T) {
	server := newTestServer(t)

	// Mumbai coordinates put AquaFix first
	var resp searchResponse
	rec := get(t, server, "/api/search?q=ac+repair&lat=19.0760&lon=72.8777", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 4, resp.Count)
	assert.Equal(t, "AquaFix Plumbing", resp.Services[0].Name)
	assert.Equal(t, "0.0 km away", resp.Services[0].DistanceText)
	require.NotNil(t, resp.Services[0].Distance)
	for _, service := range resp.Services {
		assert.NotEmpty(t, service.DistanceText)
	}
}

func TestHandleSearch_Recommendation(t *testing.T) {
	recommender := mock.NewMockRecommender()
	var captured *ai.RecommendationRequest
	recommender.RecommendFunc = func(ctx context.Context, req *ai.RecommendationRequest) (string, error) {
		captured = req
		return "Cool Care AC Repair is your best match.", nil
	}
	server := newTestServer(t, WithRecommender(recommender))

	var resp searchResponse
	rec := get(t, server, "/api/search?q=ac+repair&category=All&recommend=1", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cool Care AC Repair is your best match.", resp.Recommendation)
	assert.Empty(t, resp.RecommendationError)

	require.NotNil(t, captured)
	assert.Equal(t, "ac repair", captured.Query)
	assert.Equal(t, "", captured.Category)
	assert.Len(t, captured.Results, 4)
}

func TestHandleSearch_RecommendationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"rate limited", fmt.Errorf("%w: 429", ai.ErrRateLimited), "rate_limited"},
		{"empty response", ai.ErrEmptyResponse, "empty"},
		{"anything else", fmt.Errorf("connection refused"), "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recommender := mock.NewMockRecommender()
			recommender.RecommendFunc = func(ctx context.Context, req *ai.RecommendationRequest) (string, error) {
				return "", tt.err
			}
			server := newTestServer(t, WithRecommender(recommender))

			var resp searchResponse
			rec := get(t, server, "/api/search?q=ac+repair&recommend=true", &resp)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, resp.Recommendation)
			assert.Equal(t, tt.code, resp.RecommendationError)
		})
	}
}

func TestHandleSearch_RecommendationWithoutRecommender(t *testing.T) {
	server := newTestServer(t)

	var resp searchResponse
	rec := get(t, server, "/api/search?q=ac+repair&recommend=1", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unavailable", resp.RecommendationError)
}

func TestHandleServices(t *testing.T) {
	server := newTestServer(t)

	var resp servicesResponse
	rec := get(t, server, "/api/services", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 4, resp.Count)

	names := make([]string, 0, len(resp.Services))
	for _, service := range resp.Services {
		names = append(names, service.Name)
	}
	assert.Equal(t, []string{
		"Cool Care AC Repair",
		"Arctic Services",
		"AquaFix Plumbing",
		"Spice Garden",
	}, names)
}

func TestHandleStats(t *testing.T) {
	server := newTestServer(t)

	var resp statsResponse
	rec := get(t, server, "/api/stats", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, resp.TotalServices)
	assert.Equal(t, 3, resp.Categories)
	assert.Equal(t, 2, resp.Locations)
	assert.Equal(t, []string{"AC Repair", "Plumber", "Restaurant"}, resp.CategoryList)
	assert.Equal(t, []string{"Hyderabad", "Mumbai"}, resp.LocationList)
}

func TestHandleExport_JSON(t *testing.T) {
	server := newTestServer(t)

	var envelope struct {
		SearchQuery   string           `json:"search_query"`
		TotalServices int              `json:"total_services"`
		Services      []map[string]any `json:"services"`
	}
	rec := get(t, server, "/api/export?q=ac+repair&format=json", &envelope)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".json")
	assert.Equal(t, "ac repair", envelope.SearchQuery)
	assert.Equal(t, 4, envelope.TotalServices)
	assert.Len(t, envelope.Services, 4)
}

func TestHandleExport_DefaultsToJSON(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/api/export?q=ac+repair", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".json")
}

func TestHandleExport_XLSX(t *testing.T) {
	server := newTestServer(t)

	rec := get(t, server, "/api/export?q=ac+repair&format=xlsx", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	workbook, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Services")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Cool Care AC Repair", rows[1][0])
}

func TestHandleExport_UnsupportedFormat(t *testing.T) {
	server := newTestServer(t)

	var resp errorResponse
	rec := get(t, server, "/api/export?q=ac+repair&format=csv", &resp)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "csv")
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t)

	var resp map[string]string
	rec := get(t, server, "/api/health", &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp["status"])
}
