package validator

import (
	"errors"
	"strings"
	"testing"

	"sitterhub/pkg/logger"
	"sitterhub/pkg/model"
	"sitterhub/pkg/validation"
)

func TestReviewValidator_ValidateCreate(t *testing.T) {
	v := NewReviewValidator(logger.Discard())

	tests := []struct {
		name      string
		req       model.ReviewCreate
		wantField string
	}{
		{"valid", model.ReviewCreate{Rating: 5, Comment: "Wonderful with the kids"}, ""},
		{"rating zero", model.ReviewCreate{Rating: 0, Comment: "Wonderful with the kids"}, "rating"},
		{"rating six", model.ReviewCreate{Rating: 6, Comment: "Wonderful with the kids"}, "rating"},
		{"comment too short", model.ReviewCreate{Rating: 4, Comment: "Good"}, "comment"},
		{"comment nine chars", model.ReviewCreate{Rating: 4, Comment: "Very kind"}, "comment"},
		{"comment ten chars", model.ReviewCreate{Rating: 4, Comment: "Very kind!"}, ""},
		{"comment ten runes", model.ReviewCreate{Rating: 4, Comment: "Très doux!"}, ""},
		{"comment missing", model.ReviewCreate{Rating: 4}, "comment"},
		{"comment too long", model.ReviewCreate{Rating: 4, Comment: strings.Repeat("a", 501)}, "comment"},
		{"comment at limit", model.ReviewCreate{Rating: 1, Comment: strings.Repeat("a", 500)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var fields validation.ValidationErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if fields[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", fields[0].Field, tt.wantField)
			}
		})
	}
}
