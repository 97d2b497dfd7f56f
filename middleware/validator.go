package middleware

import (
	"safegrowth-backend/app/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators menambahkan tag binding kustom ke validator gin:
//
//	report_status   : pending / verified / rejected
//	report_category : danger / lamp / road / other
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("report_status", func(fl validator.FieldLevel) bool {
		return model.IsValidStatus(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("report_category", func(fl validator.FieldLevel) bool {
		return model.IsValidCategory(fl.Field().String())
	})
}
