package validatorx_test

import (
	"errors"
	"reflect"
	"testing"

	validatorx "github.com/eduzap/eduzap/utils/validator"
)

type contact struct {
	Name  string `json:"name" validate:"min=2"`
	Phone string `json:"phone,omitempty" validate:"digits10"`
	Note  string `validate:"max=3"`
}

func TestValidateStruct_Issues(t *testing.T) {
	tests := []struct {
		name  string
		input contact
		want  []validatorx.Issue
	}{
		{
			name:  "success: all rules pass",
			input: contact{Name: "Jo", Phone: "9876543210"},
		},
		{
			name:  "error: short phone",
			input: contact{Name: "Jo", Phone: "98765"},
			want:  []validatorx.Issue{{Field: "phone", Tag: "digits10"}},
		},
		{
			name:  "error: phone with a dash",
			input: contact{Name: "Jo", Phone: "98765-4321"},
			want:  []validatorx.Issue{{Field: "phone", Tag: "digits10"}},
		},
		{
			name:  "error: eleven digits",
			input: contact{Name: "Jo", Phone: "98765432101"},
			want:  []validatorx.Issue{{Field: "phone", Tag: "digits10"}},
		},
		{
			name:  "error: every field in order, untagged field keeps its Go name",
			input: contact{Name: "J", Phone: "", Note: "long"},
			want: []validatorx.Issue{
				{Field: "name", Tag: "min"},
				{Field: "phone", Tag: "digits10"},
				{Field: "Note", Tag: "max"},
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := validatorx.ValidateStruct(&tt.input)
			if (err != nil) != (tt.want != nil) {
				t.Fatalf("ValidateStruct() error = %v, want issues %v", err, tt.want)
			}
			if got := validatorx.Issues(err); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Issues() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIssues_NotValidation(t *testing.T) {
	if got := validatorx.Issues(errors.New("boom")); got != nil {
		t.Fatalf("Issues() = %v, want nil", got)
	}
}
