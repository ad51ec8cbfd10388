package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"fintouch/assistant/internal/extract"
	"fintouch/assistant/internal/models"
	"fintouch/assistant/internal/summary"
)

type categorizeRequest struct {
	Description         string   `json:"description"`
	AvailableCategories []string `json:"availableCategories"`
}

type audioRequest struct {
	AudioData           string   `json:"audioData"` // base64
	MIMEType            string   `json:"mimeType"`
	AvailableCategories []string `json:"availableCategories"`
	UserCurrency        string   `json:"userCurrency"`
	CurrentDate         string   `json:"currentDate"` // YYYY-MM-DD
}

type receiptRequest struct {
	ImageData string `json:"imageData"` // base64
	MIMEType  string `json:"mimeType"`
}

type iconsRequest struct {
	CategoryName string `json:"categoryName"`
}

type iconsResponse struct {
	Icons []string `json:"icons"`
}

type insightsResponse struct {
	Insights []models.Insight `json:"insights"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var req categorizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Description == "" {
		s.writeError(w, http.StatusBadRequest, "description must not be empty")
		return
	}

	result := s.categorizer.Infer(r.Context(), req.Description, req.AvailableCategories)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	var req audioRequest
	if !s.decode(w, r, &req) {
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.AudioData)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "audioData must be base64 encoded")
		return
	}
	if int64(len(data)) > s.maxAudioBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "audio payload too large")
		return
	}

	currentDate, err := models.ParseDate(req.CurrentDate)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "currentDate must be in YYYY-MM-DD format")
		return
	}

	tx, err := s.extractor.FromAudio(r.Context(), extract.AudioRequest{
		Data:                data,
		MIMEType:            req.MIMEType,
		AvailableCategories: req.AvailableCategories,
		UserCurrency:        req.UserCurrency,
		CurrentDate:         currentDate,
	})
	if err != nil {
		var extractionErr *extract.ExtractionError
		if errors.As(err, &extractionErr) && len(data) > 0 && req.MIMEType != "" {
			s.writeError(w, http.StatusBadGateway, "could not extract a transaction from the audio, please try again")
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if !s.decode(w, r, &req) {
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "imageData must be base64 encoded")
		return
	}

	details, err := s.extractor.FromReceipt(r.Context(), extract.ReceiptRequest{
		Data:     data,
		MIMEType: req.MIMEType,
	})
	if err != nil {
		if len(data) == 0 || req.MIMEType == "" {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusBadGateway, "could not extract transaction details from the receipt, please try again")
		return
	}

	s.writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryRequest
	if !s.decode(w, r, &req) {
		return
	}

	insights, err := s.summarizer.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, summary.ErrGenerationFailed) {
			// Absence of insights means "insufficient data", never an error page.
			s.writeJSON(w, http.StatusOK, insightsResponse{Insights: []models.Insight{}})
			return
		}
		s.writeError(w, http.StatusInternalServerError, "summary generation failed")
		return
	}

	s.writeJSON(w, http.StatusOK, insightsResponse{Insights: insights})
}

func (s *Server) handleIcons(w http.ResponseWriter, r *http.Request) {
	var req iconsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.CategoryName == "" {
		s.writeError(w, http.StatusBadRequest, "categoryName must not be empty")
		return
	}

	suggestions := s.iconSuggester.Suggest(r.Context(), req.CategoryName)
	if suggestions == nil {
		suggestions = []string{}
	}
	s.writeJSON(w, http.StatusOK, iconsResponse{Icons: suggestions})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
