package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/battleship-go/internal/model"
)

func TestMatchConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"default", 10, false},
		{"smallest", model.MinBoardSize, false},
		{"largest", model.MaxBoardSize, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too small for a carrier", model.MinBoardSize - 1, true},
		{"too large", model.MaxBoardSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultMatchConfig()
			cfg.BoardSize = tt.size
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidBoardSize)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
