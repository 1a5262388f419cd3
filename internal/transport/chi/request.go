package chi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	searchai "github.com/nitinanarwal/Search-AI"
)

// searchRequest is the optional POST /search body. Nil fields leave the intent unchanged.
type searchRequest struct {
	Query       *string   `json:"query" validate:"omitempty,max=500"`
	Zip         *string   `json:"zip" validate:"omitempty,max=10"`
	RadiusMiles *float64  `json:"radius_miles" validate:"omitempty,gte=0,lte=500"`
	Causes      *[]string `json:"causes" validate:"omitempty,dive,cause"`
	Sort        *string   `json:"sort" validate:"omitempty,sort_order"`
}

func (r *searchRequest) apply(q *searchai.QueryService) {
	if r.Query != nil {
		q.SetText(*r.Query)
	}
	if r.Zip != nil {
		q.SetZip(*r.Zip)
	}
	if r.RadiusMiles != nil {
		q.SetRadius(*r.RadiusMiles)
	}
	if r.Causes != nil {
		q.SetCauses(*r.Causes...)
	}
	if r.Sort != nil {
		o, _ := searchai.ParseSortOrder(*r.Sort)
		q.SetSort(o)
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("cause", func(fl validator.FieldLevel) bool {
		return searchai.IsKnownCause(fl.Field().String())
	})
	_ = v.RegisterValidation("sort_order", func(fl validator.FieldLevel) bool {
		_, ok := searchai.ParseSortOrder(fl.Field().String())
		return ok
	})
	return v
}

// validationMessage renders the first violation using JSON field names.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "cause":
		return fmt.Sprintf("unknown cause %q", fe.Value())
	case "sort_order":
		return fmt.Sprintf("unknown sort order %q", fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 0 and 500", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
