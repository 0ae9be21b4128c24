package validation_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/eduzap/eduzap/application/validation"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	cerr "github.com/eduzap/eduzap/utils/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      model.RequestInput
		want       *model.RequestPayload
		wantFields model.FieldErrors
	}{
		{
			name:  "success: trims every field",
			input: model.RequestInput{Name: "  Asha  ", Phone: " 9876543210 ", Title: "  RS Agrawal Maths Book "},
			want:  &model.RequestPayload{Name: "Asha", Phone: "9876543210", Title: "RS Agrawal Maths Book"},
		},
		{
			name:  "success: boundary lengths",
			input: model.RequestInput{Name: "Jo", Phone: "0000000000", Title: "Pen"},
			want:  &model.RequestPayload{Name: "Jo", Phone: "0000000000", Title: "Pen"},
		},
		{
			name:  "success: upper boundary lengths",
			input: model.RequestInput{Name: strings.Repeat("a", 60), Phone: "1234567890", Title: strings.Repeat("t", 120)},
			want:  &model.RequestPayload{Name: strings.Repeat("a", 60), Phone: "1234567890", Title: strings.Repeat("t", 120)},
		},
		{
			name:  "error: only phone invalid, other fields independent",
			input: model.RequestInput{Name: "Jo", Phone: "12345", Title: "Book"},
			wantFields: model.FieldErrors{
				model.FieldPhone: "Phone must be a 10-digit number",
			},
		},
		{
			name:  "error: every field invalid at once",
			input: model.RequestInput{Name: " J ", Phone: "", Title: "ab"},
			wantFields: model.FieldErrors{
				model.FieldName:  "Name must be at least 2 characters",
				model.FieldPhone: "Phone must be a 10-digit number",
				model.FieldTitle: "Title must be at least 3 characters",
			},
		},
		{
			name:  "error: too long",
			input: model.RequestInput{Name: strings.Repeat("a", 61), Phone: "1234567890", Title: strings.Repeat("t", 121)},
			wantFields: model.FieldErrors{
				model.FieldName:  "Name cannot exceed 60 characters",
				model.FieldTitle: "Title cannot exceed 120 characters",
			},
		},
		{
			name:  "error: phone with sign is not digits",
			input: model.RequestInput{Name: "Asha", Phone: "+987654321", Title: "Book"},
			wantFields: model.FieldErrors{
				model.FieldPhone: "Phone must be a 10-digit number",
			},
		},
		{
			name:  "error: phone with eleven digits",
			input: model.RequestInput{Name: "Asha", Phone: "98765432101", Title: "Book"},
			wantFields: model.FieldErrors{
				model.FieldPhone: "Phone must be a 10-digit number",
			},
		},
		{
			name:  "error: non-ascii digits rejected",
			input: model.RequestInput{Name: "Asha", Phone: "१२३४५६७८९०", Title: "Book"},
			wantFields: model.FieldErrors{
				model.FieldPhone: "Phone must be a 10-digit number",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, fields := validation.Validate(tt.input)
			if !reflect.DeepEqual(fields, tt.wantFields) {
				t.Fatalf("Validate() fields = %v, want %v", fields, tt.wantFields)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Validate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateErr(t *testing.T) {
	_, err := validation.ValidateErr(model.RequestInput{Name: "A", Phone: "1234567890", Title: "Book"})
	if !cerr.IsType(err, constant.ErrValidation) {
		t.Fatalf("ValidateErr() error = %v, want ErrValidation", err)
	}

	payload, err := validation.ValidateErr(model.RequestInput{Name: "Asha", Phone: "1234567890", Title: "Book"})
	if err != nil {
		t.Fatalf("ValidateErr() unexpected error = %v", err)
	}
	if payload.Name != "Asha" {
		t.Fatalf("ValidateErr() name = %q, want Asha", payload.Name)
	}
}

func TestFirstInvalid(t *testing.T) {
	tests := []struct {
		name   string
		fields model.FieldErrors
		want   string
	}{
		{name: "none", fields: nil, want: ""},
		{name: "phone before title", fields: model.FieldErrors{model.FieldTitle: "x", model.FieldPhone: "y"}, want: model.FieldPhone},
		{name: "name first", fields: model.FieldErrors{model.FieldTitle: "x", model.FieldName: "y"}, want: model.FieldName},
		{name: "submit only", fields: model.FieldErrors{model.FieldSubmit: "x"}, want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := validation.FirstInvalid(tt.fields); got != tt.want {
				t.Fatalf("FirstInvalid() = %q, want %q", got, tt.want)
			}
		})
	}
}
