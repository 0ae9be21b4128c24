// Package validation checks request submissions before they leave the client.
package validation

import (
	"strings"

	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/utils/errors"
	"github.com/eduzap/eduzap/utils/logger"
	validatorx "github.com/eduzap/eduzap/utils/validator"
	"go.uber.org/zap"
)

var messages = map[string]map[string]string{
	model.FieldName: {
		"min": "Name must be at least 2 characters",
		"max": "Name cannot exceed 60 characters",
	},
	model.FieldPhone: {
		"digits10": "Phone must be a 10-digit number",
	},
	model.FieldTitle: {
		"min": "Title must be at least 3 characters",
		"max": "Title cannot exceed 120 characters",
	},
}

// Validate trims the input and checks every field. It returns the accepted
// payload, or nil and an error for each failing field.
func Validate(input model.RequestInput) (*model.RequestPayload, model.FieldErrors) {
	trimmed := model.RequestInput{
		Name:  strings.TrimSpace(input.Name),
		Phone: strings.TrimSpace(input.Phone),
		Title: strings.TrimSpace(input.Title),
	}

	if err := validatorx.ValidateStruct(&trimmed); err != nil {
		fields := MapErrors(err)
		if len(fields) == 0 {
			logger.Error("[Validate] err validatorx.ValidateStruct", zap.String("error", err.Error()))
			fields = model.FieldErrors{model.FieldSubmit: constant.MsgSubmitFailed}
		}
		return nil, fields
	}

	return &model.RequestPayload{
		Name:  trimmed.Name,
		Phone: trimmed.Phone,
		Title: trimmed.Title,
	}, nil
}

// ValidateErr is Validate returning a CustomError of type ErrValidation.
func ValidateErr(input model.RequestInput) (*model.RequestPayload, error) {
	payload, fields := Validate(input)
	if fields != nil {
		return nil, errors.SetCustomError(constant.ErrValidation).WithFields(fields)
	}
	return payload, nil
}

// MapErrors converts validator issues into field messages. Only the first
// issue per field is kept.
func MapErrors(err error) model.FieldErrors {
	issues := validatorx.Issues(err)
	if issues == nil {
		return nil
	}

	fields := model.FieldErrors{}
	for _, is := range issues {
		field := is.Field
		if _, seen := fields[field]; seen {
			continue
		}
		msg, ok := messages[field][is.Tag]
		if !ok {
			msg = "Invalid " + field
		}
		fields[field] = msg
	}
	return fields
}

// FirstInvalid returns the first field in display order that has an error.
func FirstInvalid(fields model.FieldErrors) string {
	for _, f := range model.InputFields {
		if _, ok := fields[f]; ok {
			return f
		}
	}
	return ""
}
