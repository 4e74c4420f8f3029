package engine

import (
	"context"

	"github.com/danieljhkim/escala/internal/reference"
)

// CheckReference loads the reference file and reports every inconsistency
// in it.
func (e *Engine) CheckReference(ctx context.Context) (*ReferenceCheckResult, error) {
	data, err := e.loadReference()
	if err != nil {
		return nil, err
	}

	issues := data.Validate()
	if issues == nil {
		issues = []reference.Issue{}
	}
	for _, issue := range issues {
		e.log.Warn("reference issue", "kind", issue.Kind, "subject", issue.Subject, "message", issue.Message)
	}

	return &ReferenceCheckResult{
		Path:   data.Path,
		People: data.Directory().Len(),
		Months: data.Months(),
		Issues: issues,
	}, nil
}
