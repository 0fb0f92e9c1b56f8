package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/export"
	"github.com/poiesic/servit/search"
)

type searchResponse struct {
	Query               string           `json:"query"`
	Count               int              `json:"count"`
	Services            []export.Service `json:"services"`
	Recommendation      string           `json:"recommendation,omitempty"`
	RecommendationError string           `json:"recommendation_error,omitempty"`
}

type servicesResponse struct {
	Count    int              `json:"count"`
	Services []export.Service `json:"services"`
}

type statsResponse struct {
	TotalServices int      `json:"total_services"`
	Categories    int      `json:"categories"`
	Locations     int      `json:"locations"`
	CategoryList  []string `json:"category_list"`
	LocationList  []string `json:"location_list"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// searchParams carries the parsed query string of a search or export
// request.
type searchParams struct {
	query     string
	category  string
	location  string
	maxPrice  float64
	limit     int
	lat       float64
	lon       float64
	hasCoords bool
	recommend bool
}

func parseSearchParams(r *http.Request) (*searchParams, error) {
	q := r.URL.Query()

	params := &searchParams{
		query:    strings.TrimSpace(q.Get("q")),
		category: strings.TrimSpace(q.Get("category")),
		location: strings.TrimSpace(q.Get("location")),
	}
	if params.query == "" {
		return nil, fmt.Errorf("missing q parameter")
	}

	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid max_price %q", raw)
		}
		params.maxPrice = maxPrice
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid limit %q", raw)
		}
		params.limit = limit
	}

	rawLat, rawLon := q.Get("lat"), q.Get("lon")
	if (rawLat == "") != (rawLon == "") {
		return nil, fmt.Errorf("lat and lon must be provided together")
	}
	if rawLat != "" {
		lat, err := strconv.ParseFloat(rawLat, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid lat %q", rawLat)
		}
		lon, err := strconv.ParseFloat(rawLon, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid lon %q", rawLon)
		}
		params.lat, params.lon = lat, lon
		params.hasCoords = true
	}

	params.recommend = parseBool(q.Get("recommend"))

	return params, nil
}

// handleSearch serves GET /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	results := s.runSearch(r.Context(), params)

	resp := searchResponse{
		Query:    params.query,
		Count:    len(results),
		Services: export.Services(results),
	}
	if params.recommend && len(results) > 0 {
		resp.Recommendation, resp.RecommendationError = s.recommendFor(r.Context(), params, results)
	}

	writeJSON(w, http.StatusOK, resp)
}

// runSearch executes the search and, when the caller sent coordinates,
// annotates and reorders the results by distance.
func (s *Server) runSearch(ctx context.Context, params *searchParams) []*core.SearchResult {
	results := s.searcher.Search(ctx, search.SearchRequest{
		Query:    params.query,
		Category: params.category,
		Location: params.location,
		MaxPrice: params.maxPrice,
		Limit:    params.limit,
	})
	if params.hasCoords {
		results = s.ranker.AnnotateAndSort(results, params.lat, params.lon)
	}
	return results
}

// recommendFor asks the recommender to summarize the results. Failures map
// onto the stable recommendation_error codes.
func (s *Server) recommendFor(ctx context.Context, params *searchParams, results []*core.SearchResult) (string, string) {
	if s.recommender == nil {
		return "", "unavailable"
	}

	// "All" disables the category filter, so it never reaches the prompt
	category := params.category
	if category == "All" {
		category = ""
	}

	text, err := s.recommender.Recommend(ctx, &ai.RecommendationRequest{
		Query:    params.query,
		Category: category,
		Location: params.location,
		Results:  results,
	})
	if err != nil {
		s.logger.Warn("recommendation failed", "query", params.query, "err", err)
		switch {
		case errors.Is(err, ai.ErrRateLimited):
			return "", "rate_limited"
		case errors.Is(err, ai.ErrEmptyResponse):
			return "", "empty"
		default:
			return "", "unavailable"
		}
	}
	return text, ""
}

// handleServices serves GET /api/services with every stored listing.
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.AllServiceRecords(r.Context())
	if err != nil {
		s.logger.Error("failed to list service records", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "listing services failed"})
		return
	}

	services := make([]export.Service, 0, len(records))
	for _, record := range records {
		services = append(services, export.NewService(record))
	}

	writeJSON(w, http.StatusOK, servicesResponse{
		Count:    len(services),
		Services: services,
	})
}

// handleStats serves GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.AllServiceRecords(r.Context())
	if err != nil {
		s.logger.Error("failed to list service records", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "computing stats failed"})
		return
	}

	stats := core.ComputeStats(records)
	writeJSON(w, http.StatusOK, statsResponse{
		TotalServices: stats.TotalServices,
		Categories:    stats.Categories,
		Locations:     stats.Locations,
		CategoryList:  stats.CategoryList,
		LocationList:  stats.LocationList,
	})
}

// handleExport serves GET /api/export. It accepts the search parameters
// plus format=json|xlsx and answers with a file download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "json"
	}

	results := s.runSearch(r.Context(), params)
	filename := fmt.Sprintf("service_results_%d.%s", time.Now().Unix(), format)

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		err = export.WriteJSON(w, params.query, results)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		err = export.WriteXLSX(w, params.query, results)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unsupported format %q", format)})
		return
	}
	if err != nil {
		// Headers are already sent, all we can do is log
		s.logger.Error("export write failed", "format", format, "err", err)
	}
}

// handleHealth serves GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseBool(input string) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "1" || input == "true"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	enc := json.NewEncoder(w)
	_ = enc.Encode(data)
}
