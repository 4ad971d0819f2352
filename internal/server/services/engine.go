// Package services contains the server-side business logic: the
// authentication core and the ownership-scoped lifecycle engine for tasks and
// task lists. Every operation takes the resolved owner explicitly; there is
// no ambient request state.
package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jtech/tasklist/internal/common"
)

// Field length bounds shared with the transport layer.
const (
	maxNameLen        = 200
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// resolveID parses a raw identifier. Malformed ids collapse into ErrNotFound
// so a caller cannot distinguish a bad id from a missing record.
func resolveID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", common.ErrNotFound
	}
	return id.String(), nil
}

// checkRequired validates a mandatory text field: non-blank after trimming
// and within maxLen. Returns the trimmed value.
func checkRequired(v *common.ValidationError, field, value string, maxLen int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, field+" is required")
	} else if len(value) > maxLen {
		v.Add(field, fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
	return value
}

// checkOptional validates an optional text field against maxLen.
func checkOptional(v *common.ValidationError, field, value string, maxLen int) string {
	value = strings.TrimSpace(value)
	if len(value) > maxLen {
		v.Add(field, fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
	return value
}
