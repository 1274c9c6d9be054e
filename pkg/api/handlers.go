package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ssargent/fieldsheet/pkg/gateway"
)

// Server holds the API server state
type Server struct {
	gateway FieldGateway
	config  ServerConfig
	metrics *Metrics
	sugar   *zap.SugaredLogger
}

// NewServer creates a new API server
func NewServer(gw FieldGateway, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	return &Server{
		gateway: gw,
		config:  config,
		metrics: metrics,
		sugar:   logger.Sugar(),
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleGetFormFields godoc
//
//	@Summary		List form fields
//	@Description	Read the form field table from the spreadsheet
//	@Tags			form-fields
//	@Produce		json
//	@Success		200	{object}	FormFieldsResponse
//	@Failure		500	{object}	MessageResponse
//	@Router			/form-fields [get]
func (s *Server) handleGetFormFields(w http.ResponseWriter, r *http.Request) {
	records, err := s.gateway.Read(r.Context())
	if err != nil {
		s.sendGatewayError(w, err, msgFetchError)
		return
	}

	s.metrics.SetFormFields(len(records))
	sendJSON(w, http.StatusOK, FormFieldsResponse{FormFields: records})
}

// handlePostFormFields godoc
//
//	@Summary		Replace form fields
//	@Description	Clear the form field table and write the given fields
//	@Tags			form-fields
//	@Accept			json
//	@Produce		json
//	@Param			body	body		FormFieldsRequest	true	"Form fields"
//	@Success		200		{object}	MessageResponse
//	@Failure		400		{object}	MessageResponse
//	@Failure		500		{object}	MessageResponse
//	@Router			/form-fields [post]
func (s *Server) handlePostFormFields(w http.ResponseWriter, r *http.Request) {
	if !s.gateway.Configured() {
		s.sendGatewayError(w, gateway.ErrNotConfigured, msgUpdateError)
		return
	}

	var req FormFieldsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.sugar.Debugw("invalid form fields body", "error", err)
		sendMessage(w, http.StatusBadRequest, MessageResponse{Message: msgInvalidFormat})
		return
	}

	records, err := gateway.ParseRecords(req.FormFields)
	if err != nil {
		s.sendGatewayError(w, err, msgUpdateError)
		return
	}

	if err := s.gateway.Write(r.Context(), records); err != nil {
		s.sendGatewayError(w, err, msgUpdateError)
		return
	}

	s.metrics.SetFormFields(len(records))
	sendMessage(w, http.StatusOK, MessageResponse{Message: msgUpdated})
}

// sendGatewayError maps gateway errors to status codes. Store failures carry
// their cause in the error field.
func (s *Server) sendGatewayError(w http.ResponseWriter, err error, message string) {
	var verr *gateway.ValidationError
	switch {
	case errors.Is(err, gateway.ErrNotConfigured):
		s.sugar.Errorw("request rejected", "error", err)
		sendMessage(w, http.StatusInternalServerError, MessageResponse{Message: msgNotConfigured})
	case errors.As(err, &verr):
		s.sugar.Debugw("invalid form fields payload", "error", err)
		sendMessage(w, http.StatusBadRequest, MessageResponse{Message: msgInvalidFormat})
	default:
		sendMessage(w, http.StatusInternalServerError, MessageResponse{Message: message, Error: err.Error()})
	}
}
