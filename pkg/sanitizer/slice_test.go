package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "convert to lowercase",
			input: []string{"First Aid", "COOKING"},
			want:  []string{"first aid", "cooking"},
		},
		{
			name:  "remove duplicates after normalization",
			input: []string{"First Aid", "first  aid", " FIRST AID "},
			want:  []string{"first aid"},
		},
		{
			name:  "filter empty strings",
			input: []string{"Homework", "", "  ", "Swimming"},
			want:  []string{"homework", "swimming"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  []string{},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSkills(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeSkills(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLanguages_PreservesOrder(t *testing.T) {
	got := NormalizeLanguages([]string{"Arabic", "French", "arabic", "English"})
	want := []string{"arabic", "french", "english"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeLanguages() = %v, want %v", got, want)
	}
}
