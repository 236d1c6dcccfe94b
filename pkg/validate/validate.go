package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"vidtube/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator 进程内共享的校验器，字段名取 json 标签
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return instance
}

// Struct 按 validate 标签校验，失败时返回 errs.Validation，每个字段一条明细
func Struct(v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.Internal(err)
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fieldMessage(fe.Field(), fe))
	}
	return errs.Validation("invalid input", details...)
}

// Var 按 tag 校验单个值，明细以 name 作为字段名
func Var(name string, v interface{}, tag string) error {
	err := Validator().Var(v, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.Internal(err)
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fieldMessage(name, fe))
	}
	return errs.Validation("invalid input", details...)
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "email":
		return field + " must be a valid email"
	case "gte":
		return field + " must be at least " + fe.Param()
	case "required_without":
		return field + " or " + lowerFirst(fe.Param()) + " is required"
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
