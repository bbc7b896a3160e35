package restclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

const maxErrorBodyBytes = 64 << 10

// errorBody is the failure envelope of create/update endpoints. errors maps
// a field to one message or a list of messages.
type errorBody struct {
	Message string                     `json:"message"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

// statusError classifies a non-success response. Authorization failures map
// to domain.ErrAuth. When structured is set, a JSON body with a message or
// field errors becomes a *domain.ValidationError; anything else is a
// *domain.RequestFailedError.
func statusError(resp *http.Response, structured bool) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrAuth)
	}
	if !structured {
		return &domain.RequestFailedError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return &domain.RequestFailedError{Status: resp.StatusCode}
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return &domain.RequestFailedError{Status: resp.StatusCode}
	}

	fields := make(map[string]string, len(body.Errors))
	for name, msg := range body.Errors {
		if m := firstMessage(msg); m != "" {
			fields[name] = m
		}
	}
	if strings.TrimSpace(body.Message) == "" && len(fields) == 0 {
		return &domain.RequestFailedError{Status: resp.StatusCode}
	}
	if len(fields) == 0 {
		fields = nil
	}
	return &domain.ValidationError{Message: body.Message, Fields: fields}
}

func firstMessage(raw json.RawMessage) string {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return one
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}
