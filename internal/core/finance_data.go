package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidFinanceData is returned when the finance file is not JSON.
var ErrInvalidFinanceData = errors.New("finance data is not valid JSON")

// FinanceSource provides the finance dashboard document.
type FinanceSource interface {
	Load(ctx context.Context) (json.RawMessage, error)
}

type fileFinanceSource struct {
	path string
}

// NewFileFinanceSource reads path on every Load, so edits to the file show
// up without a restart. A relative path resolves against the working
// directory.
func NewFileFinanceSource(path string) FinanceSource {
	return &fileFinanceSource{path: path}
}

func (s *fileFinanceSource) Load(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read finance data %s: %w", s.path, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("parse finance data %s: %w", s.path, ErrInvalidFinanceData)
	}
	return json.RawMessage(raw), nil
}
