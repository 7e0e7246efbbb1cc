// Package validation holds the payload checks shared by writes.
package validation

import (
	"fmt"
	"strings"
	"sync"

	"gopkg.in/go-playground/validator.v9"
)

// MaxText is the longest entry, in code points.
const MaxText = 1000

var (
	once     sync.Once
	standard *validator.Validate
)

// Standard returns the validator with the custom tags registered.
func Standard() *validator.Validate {
	once.Do(func() {
		standard = validator.New()
		if err := standard.RegisterValidation("notblank", notBlankValidationFunc); err != nil {
			panic(fmt.Sprintf("validation: register notblank: %v", err))
		}
	})
	return standard
}

func notBlankValidationFunc(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FailedTag returns the tag of the first failed check in err, or "".
func FailedTag(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return ""
	}
	return errs[0].Tag()
}
