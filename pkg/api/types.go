package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ssargent/fieldsheet/pkg/codec"
)

// Response messages
const (
	msgNotConfigured = "Spreadsheet ID not configured"
	msgFetchError    = "Error fetching form fields"
	msgUpdateError   = "Error updating form fields"
	msgInvalidFormat = "Invalid data format. Expected an array of form fields."
	msgUpdated       = "Form fields updated successfully"
)

// maxBodyBytes limits POST /form-fields payloads
const maxBodyBytes = 1 << 20

// MessageResponse is returned for acknowledgements and errors. Error carries
// the underlying cause of a failed store call.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// FormFieldsResponse is the body of GET /form-fields
type FormFieldsResponse struct {
	FormFields []codec.FieldRecord `json:"formFields"`
}

// FormFieldsRequest is the body of POST /form-fields. FormFields stays raw so
// that a non-array value can be reported as a validation error.
type FormFieldsRequest struct {
	FormFields json.RawMessage `json:"formFields"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string // empty disables API key checks
}

// FieldGateway defines the form field operations served over HTTP
type FieldGateway interface {
	Configured() bool
	Read(ctx context.Context) ([]codec.FieldRecord, error)
	Write(ctx context.Context, records []codec.FieldRecord) error
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}
