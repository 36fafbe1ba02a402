package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"telos/internal/models"
	"telos/internal/usecases"
)

// percent accepts progress as a JSON number or a numeric string, since edit
// forms post it back as text.
type percent int

func (p *percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*p = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return &usecases.ValidationError{Field: "progress", Message: "must be a number"}
	}
	if f < 0 || f > 100 {
		return &usecases.ValidationError{Field: "progress", Message: "must be between 0 and 100"}
	}
	*p = percent(math.Round(f))
	return nil
}

type goalPayload struct {
	models.Goal
	Progress percent `json:"progress"`
}

func decodeGoal(w http.ResponseWriter, r *http.Request) (models.Goal, error) {
	var payload goalPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		return models.Goal{}, err
	}
	g := payload.Goal
	g.Progress = int(payload.Progress)
	return g, nil
}
