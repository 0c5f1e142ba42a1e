package utils

import (
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	if Validate == nil {
		Validate = validator.New()
	}
}

// ValidateConfig checks the fields the server cannot start without.
func ValidateConfig(cfg Config) error {
	InitValidator()
	return Validate.Struct(cfg)
}
