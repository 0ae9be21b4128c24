package validatorx

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	engine *gpvalidator.Validate
	once   sync.Once

	tenDigits = regexp.MustCompile(`^[0-9]{10}$`)
)

// Issue is one failed rule: the json name of the field and the tag that failed.
type Issue struct {
	Field string
	Tag   string
}

func build() {
	engine = gpvalidator.New()
	engine.RegisterTagNameFunc(jsonName)
	// phone numbers are ten ASCII digits, nothing else
	_ = engine.RegisterValidation("digits10", func(fl gpvalidator.FieldLevel) bool {
		return tenDigits.MatchString(fl.Field().String())
	})
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// Init builds the shared validator. Safe to call more than once.
func Init() {
	once.Do(build)
}

func ValidateStruct(s interface{}) error {
	Init()
	return engine.Struct(s)
}

// Issues lists the failed rules in err in struct field order. It returns nil
// when err did not come from validation.
func Issues(err error) []Issue {
	var verrs gpvalidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Issue{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
