// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrencies contains the supported ISO 4217 currency codes.
var validCurrencies = map[string]bool{
	"EUR": true,
	"USD": true,
	"GBP": true,
	"CHF": true,
}

// validMediaTypes contains the supported media kinds.
var validMediaTypes = map[string]bool{
	"image": true,
	"video": true,
}

// Register installs the custom validators on Gin's binding engine.
// Call once at startup before handling requests.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("mediatype", validateMediaType)
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateMediaType(fl validator.FieldLevel) bool {
	return validMediaTypes[fl.Field().String()]
}
