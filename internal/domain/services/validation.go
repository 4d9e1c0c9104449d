package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/kinship"
)

var validate = newValidator()

// newValidator returns a validator that reports fields by their JSON name and
// understands the gender and isodate tags used on member records.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("gender", validGender); err != nil {
		panic(fmt.Sprintf("registering gender validation: %v", err))
	}
	if err := v.RegisterValidation("isodate", validDate); err != nil {
		panic(fmt.Sprintf("registering isodate validation: %v", err))
	}
	return v
}

func validGender(fl validator.FieldLevel) bool {
	return entities.ParseGender(fl.Field().String()) != entities.GenderUnspecified
}

func validDate(fl validator.FieldLevel) bool {
	return !kinship.ParseBirthDate(fl.Field().String()).IsZero()
}

// fieldProblem describes the first validation failure of a struct.
type fieldProblem struct {
	Field   string
	Value   string
	Message string
}

// checkStruct validates v and returns its first failing field, or nil.
func checkStruct(v any) (*fieldProblem, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil, fmt.Errorf("validating: %w", err)
	}

	fe := verrs[0]
	value := fmt.Sprint(fe.Value())
	return &fieldProblem{
		Field:   fe.Field(),
		Value:   value,
		Message: problemMessage(fe.Field(), fe.Tag(), value),
	}, nil
}

func problemMessage(field, tag, value string) string {
	switch tag {
	case "required":
		return "missing required field: " + field
	case "gender":
		return fmt.Sprintf("invalid gender %q (valid: Male, Female, Other)", value)
	case "isodate":
		return fmt.Sprintf("invalid %s %q (expected YYYY-MM-DD)", field, value)
	case "email":
		return fmt.Sprintf("invalid email %q", value)
	case "url":
		return fmt.Sprintf("invalid %s %q (expected a URL)", field, value)
	default:
		return fmt.Sprintf("invalid %s %q", field, value)
	}
}

// validateMember checks a member record before it is stored.
func validateMember(m *entities.FamilyMember) error {
	problem, err := checkStruct(m)
	if err != nil {
		return err
	}
	if problem != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMember, problem.Message)
	}
	return nil
}
