package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/shindong96/atdd-subway-path/internal/domain"
	"github.com/shindong96/atdd-subway-path/internal/service"
)

// PathFinder answers route queries.
type PathFinder interface {
	FindPath(ctx context.Context, q service.PathQuery) (domain.Route, error)
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger   *slog.Logger
	paths    PathFinder
	validate *validator.Validate
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, paths PathFinder) *APIHandlers {
	return &APIHandlers{
		logger:   logger.With("component", "api"),
		paths:    paths,
		validate: newValidator(),
	}
}

type pathRequest struct {
	Source int64 `query:"source" validate:"required,gt=0"`
	Target int64 `query:"target" validate:"required,gt=0"`
	Age    *int  `query:"age"`
}

type stationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type pathResponse struct {
	Stations []stationResponse `json:"stations"`
	Distance int               `json:"distance"`
	Fare     int               `json:"fare"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (h *APIHandlers) handlePaths(w http.ResponseWriter, r *http.Request) {
	req, err := h.parsePathRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.paths.FindPath(r.Context(), service.PathQuery{
		Source: req.Source,
		Target: req.Target,
		Age:    req.Age,
	})
	if err != nil {
		h.writeDomainError(w, err, req)
		return
	}

	response := pathResponse{
		Stations: make([]stationResponse, 0, len(result.Stations)),
		Distance: result.Distance,
		Fare:     result.Fare,
	}
	for _, st := range result.Stations {
		response.Stations = append(response.Stations, stationResponse{ID: st.ID, Name: st.Name})
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) parsePathRequest(r *http.Request) (pathRequest, error) {
	query := r.URL.Query()
	var req pathRequest
	var err error

	if req.Source, err = parseID(query.Get("source"), "source"); err != nil {
		return pathRequest{}, err
	}
	if req.Target, err = parseID(query.Get("target"), "target"); err != nil {
		return pathRequest{}, err
	}
	if v := query.Get("age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return pathRequest{}, errors.New("age must be an integer")
		}
		req.Age = &age
	}

	if err := h.validate.Struct(req); err != nil {
		return pathRequest{}, describeValidation(err)
	}
	return req, nil
}

func (h *APIHandlers) writeDomainError(w http.ResponseWriter, err error, req pathRequest) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	if status >= http.StatusInternalServerError {
		h.logger.Error("path query failed", "error", err, "source", req.Source, "target", req.Target)
		msg := "failed to find path"
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
			msg = "path query timed out"
		}
		writeErrorKind(w, status, msg, kind)
		return
	}

	h.logger.Debug("path query rejected", "error", err, "kind", kind.String())
	writeErrorKind(w, status, err.Error(), kind)
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindStationNotFound:
		return http.StatusNotFound
	case domain.KindSameStation, domain.KindInvalidAge, domain.KindInvalidDistance:
		return http.StatusBadRequest
	case domain.KindNoPathExists:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func parseID(value, field string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.New(field + " must be an integer station id")
	}
	return id, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

func writeErrorKind(w http.ResponseWriter, status int, msg string, kind domain.ErrorKind) {
	resp := errorResponse{Error: msg}
	if kind != domain.KindUnknown {
		resp.Kind = kind.String()
	}
	respondJSON(w, status, resp)
}
