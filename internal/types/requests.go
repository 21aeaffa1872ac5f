package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ImportRequest is the input to one aggregation run.
// Sources and SourceKinds are parallel sequences: Sources[i] is the
// identifier handed to the adapter for kind SourceKinds[i]. Both may be
// empty: a zero-source run still yields a profile carrying only UserID.
type ImportRequest struct {
	UserID      string       `json:"user_id" validate:"required"`
	Sources     []string     `json:"sources"`
	SourceKinds []SourceKind `json:"source_kinds"`
}

// InvalidRequestError indicates bad run input. It is the only error that
// aborts an aggregation run, before any source is processed.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Message)
}

// Validate checks the ImportRequest using the validator plus the
// parallel-sequence length invariant.
func (r *ImportRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return &InvalidRequestError{Message: err.Error()}
	}
	if len(r.Sources) != len(r.SourceKinds) {
		return &InvalidRequestError{
			Message: fmt.Sprintf("sources and source_kinds must have the same length (%d != %d)",
				len(r.Sources), len(r.SourceKinds)),
		}
	}
	return nil
}
