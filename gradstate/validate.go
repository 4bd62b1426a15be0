package gradstate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidState is wrapped by the errors returned by Validate.
var ErrInvalidState = errors.New("invalid gradient state")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields with their query/json names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return IsHexColor(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the documented ranges of every field.
// The state model itself never clamps nor rejects values: Validate is
// for callers wanting to refuse out-of-range input (preset files, the
// HTTP API).
func Validate(s State) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		name := strings.TrimPrefix(fe.Namespace(), "State.")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs[i] = fmt.Sprintf("%s: %v does not satisfy %s", name, fe.Value(), rule)
	}
	return fmt.Errorf("%w: %s", ErrInvalidState, strings.Join(msgs, "; "))
}

// CheckFinite reports the first numeric field of s which is infinite or
// not a number. Such values are valid for the model but can be neither
// drawn nor written as JSON.
func CheckFinite(s State) error {
	fields := [...]struct {
		name string
		v    float64
	}{
		{"angle", s.Angle}, {"centerX", s.CenterX}, {"centerY", s.CenterY},
		{"radius", s.Radius}, {"aspectRatio", s.AspectRatio}, {"feather", s.Feather},
		{"grain", s.Grain}, {"grainFrequency", s.GrainFrequency},
	}
	for _, f := range fields {
		if math.IsInf(f.v, 0) || math.IsNaN(f.v) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidState, f.name)
		}
	}
	for _, stop := range s.ColorStops {
		if math.IsInf(stop.Alpha, 0) || math.IsNaN(stop.Alpha) ||
			math.IsInf(stop.Position, 0) || math.IsNaN(stop.Position) {
			return fmt.Errorf("%w: color stop %q is not finite", ErrInvalidState, stop.ID)
		}
	}
	return nil
}
