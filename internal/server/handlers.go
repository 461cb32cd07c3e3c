package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pollux-motors/showroom/internal/catalog"
	"github.com/pollux-motors/showroom/internal/compare"
	"github.com/pollux-motors/showroom/internal/model"
	"github.com/pollux-motors/showroom/internal/search"
	"github.com/pollux-motors/showroom/internal/showroom"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.VehicleFilter{Category: q.Get("category")}

	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "featured must be a boolean")
			return
		}
		filter.Featured = featured
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	vehicles, err := s.svc.Vehicles(r.Context(), filter)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id := model.ID(chi.URLParam(r, "id"))

	v, err := s.svc.Vehicle(r.Context(), id)
	if errors.Is(err, showroom.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("vehicle %s not found", id))
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

type searchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")

	filters, err := parseFilters(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.svc.Search(r.Context(), query, filters)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Results: results, Count: len(results)})
}

type compareRequest struct {
	IDs      []model.ID       `json:"ids"`
	Entities []compare.Fields `json:"entities"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case len(req.IDs) > 0 && len(req.Entities) > 0:
		writeError(w, http.StatusBadRequest, "provide ids or entities, not both")
	case len(req.IDs) > 0:
		cmp, err := s.svc.Compare(r.Context(), req.IDs)
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cmp)
	case len(req.Entities) > 0:
		writeJSON(w, http.StatusOK, s.svc.CompareEntities(req.Entities))
	default:
		writeError(w, http.StatusBadRequest, "ids or entities are required")
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("server: request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", r.Header.Get(requestIDHeader)),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// parseFilters reads search filters from query parameters. kind and brand
// may repeat or hold comma-separated lists.
func parseFilters(q url.Values) (*search.Filters, error) {
	f := &search.Filters{}

	for _, k := range splitList(q["kind"]) {
		kind := model.RecordKind(strings.ToLower(k))
		if !kind.IsValid() {
			return nil, eris.Errorf("unknown kind %q", k)
		}
		f.Kinds = append(f.Kinds, kind)
	}
	f.Brands = splitList(q["brand"])

	var err error
	if f.PriceMin, err = floatParam(q, "min_price"); err != nil {
		return nil, err
	}
	if f.PriceMax, err = floatParam(q, "max_price"); err != nil {
		return nil, err
	}
	if f.YearMin, err = intParam(q, "min_year"); err != nil {
		return nil, err
	}
	if f.YearMax, err = intParam(q, "max_year"); err != nil {
		return nil, err
	}
	return f, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func floatParam(q url.Values, name string) (*float64, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, eris.Errorf("%s must be a number", name)
	}
	return &f, nil
}

func intParam(q url.Values, name string) (*int, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, eris.Errorf("%s must be an integer", name)
	}
	return &n, nil
}
