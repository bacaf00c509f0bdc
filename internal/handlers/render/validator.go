package render

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	inputs "github.com/nkiryanov/modcheck/internal/service/validate"
)

func configureValidator(validate *validator.Validate) {
	_ = validate.RegisterValidation("sortcode", validateSortCode)
	_ = validate.RegisterValidation("accountnumber", validateAccountNumber)
	validate.RegisterTagNameFunc(useJSONTagNames)
}

func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

func validateSortCode(fl validator.FieldLevel) bool {
	return inputs.SortCode(fl.Field().String()) == nil
}

func validateAccountNumber(fl validator.FieldLevel) bool {
	return inputs.AccountNumber(fl.Field().String()) == nil
}
