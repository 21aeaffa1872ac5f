package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/talent-profiles/internal/enrich"
	"github.com/jonathan/talent-profiles/internal/pipeline"
	"github.com/jonathan/talent-profiles/internal/types"
)

// maxImageUploadBytes caps the size of one uploaded image.
const maxImageUploadBytes = 8 << 20

// defaultListLimit is the default page size for profile listings.
const defaultListLimit = 50

// ImportResponse represents the response for /import-profile
type ImportResponse struct {
	Status           string         `json:"status"`
	Profile          *types.Profile `json:"profile"`
	SourcesProcessed int            `json:"sources_processed"`
}

// ListProfilesResponse represents the response for GET /profiles
type ListProfilesResponse struct {
	Profiles []types.ProfileSummary `json:"profiles"`
	Total    int                    `json:"total"`
}

// handleRoot returns basic API identification
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Smart Talent Profile Builder API",
	})
}

// handleImportProfile runs a full aggregation for the requested sources and
// returns the stored profile.
func (s *Server) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	var req types.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	log.Printf("Starting profile import for %s (%d sources)", req.UserID, len(req.Sources))

	profile, err := s.builder.Build(r.Context(), &req)
	if err != nil {
		log.Printf("Profile import for %s failed: %v", req.UserID, err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ImportResponse{
		Status:           "success",
		Profile:          profile,
		SourcesProcessed: len(req.Sources),
	})
}

// handleImportProfileStream runs an aggregation and streams progress via SSE
func (s *Server) handleImportProfileStream(w http.ResponseWriter, r *http.Request) {
	var req types.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming profile import for %s...", req.UserID)

	_, err = s.builder.BuildWithProgress(r.Context(), &req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})
	if err != nil {
		log.Printf("Streaming profile import for %s failed: %v", req.UserID, err)
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(req.UserID, "completed")
	log.Printf("Streaming profile import for %s completed", req.UserID)
}

// handleListProfiles returns lightweight profile summaries
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	summaries, err := s.store.ListProfiles(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListProfilesResponse{
		Profiles: summaries,
		Total:    len(summaries),
	})
}

// handleGetProfile returns a stored profile by user ID
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "User ID is required")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleAnalyzeImage runs the vision model over one uploaded image
func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read image: "+err.Error())
		return
	}

	format := enrich.ImageFormat(header.Header.Get("Content-Type"))
	analysis, err := enrich.AnalyzeImageData(r.Context(), s.client, data, format)
	if err != nil {
		log.Printf("Image analysis failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Image analysis failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"filename": header.Filename,
		"analysis": analysis,
	})
}
