// Package inputval validates form input structs with go-playground/validator.
//
// Fields carry `validate:"..."` rules and a `label:"..."` used in messages:
//
//	type mentorInput struct {
//		Nama  string `validate:"required,max=200" label:"Nama"`
//		Email string `validate:"required,sheetemail" label:"Email"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//		reRender(res.First())
//	}
package inputval

import (
	"fmt"
	"net/mail"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		_ = v.RegisterValidation("sheetemail", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return v
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string // struct field name
	Label   string
	Tag     string // failed rule, e.g. "required"
	Message string
}

// Result collects the failed rules of one Validate call, in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// HasTag reports whether any field failed the given rule.
func (r Result) HasTag(tags ...string) bool {
	for _, e := range r.Errors {
		for _, t := range tags {
			if e.Tag == t {
				return true
			}
		}
	}
	return false
}

// Validate runs the struct's rules. A non-struct argument is reported as a
// single error rather than a panic.
func Validate(s any) Result {
	err := instance().Struct(s)
	if err == nil {
		return Result{}
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{Errors: []FieldError{{Tag: "invalid", Message: err.Error()}}}
	}
	out := Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.StructField(),
			Label:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s tidak boleh kosong.", fe.Field())
	case "sheetemail", "email":
		return "Format email tidak valid."
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter.", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s minimal %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s tidak valid.", fe.Field())
	}
}

// IsValidEmail requires an "@" and a "." and a bare address that
// net/mail accepts (no display name).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "@") || !strings.Contains(s, ".") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && addr.Name == ""
}
