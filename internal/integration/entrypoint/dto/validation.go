package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// RegisterValidators installs the catalog validators on gin's binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterCatalogValidators(v)
}

// RegisterCatalogValidators adds the service_key and bundle_key tags to v.
func RegisterCatalogValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("service_key", validateServiceKey); err != nil {
		return err
	}
	return v.RegisterValidation("bundle_key", validateBundleKey)
}

func validateServiceKey(fl validator.FieldLevel) bool {
	_, ok := entity.LookupService(fl.Field().String())
	return ok
}

func validateBundleKey(fl validator.FieldLevel) bool {
	_, ok := entity.LookupBundle(fl.Field().String())
	return ok
}
