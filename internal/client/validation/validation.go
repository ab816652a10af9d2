// Package validation wraps go-playground/validator with the field rules and
// user-facing messages of the giftshop forms.
//
// Custom tags:
//
//	kr_mobile   Korean mobile number written as 010 followed by 8 digits
//	email_addr  loose address check: something@something.tld, no spaces
//
// Errors are reported as FieldErrors keyed by the JSON path of the field,
// e.g. "receivers[2].phoneNumber" or "receivers" for list-level rules.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	mobilePattern = regexp.MustCompile(`^010[0-9]{8}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldErrors maps a field path to the first message reported for it.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := f.Fields()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// Fields returns the failing field paths in sorted order.
func (f FieldErrors) Fields() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Messages is a per-field override table: "field.tag" or "tag" -> message.
// Field is the last path segment without index, e.g. "phoneNumber".
type Messages map[string]string

// DefaultMessages holds the wording shown by the order and login forms.
var DefaultMessages = Messages{
	"name.required":         "이름을 입력하세요.",
	"phone.required":        "01012345678 형식으로 입력하세요.",
	"phone.kr_mobile":       "01012345678 형식으로 입력하세요.",
	"phoneNumber.required":  "01012345678 형식으로 입력하세요.",
	"phoneNumber.kr_mobile": "01012345678 형식으로 입력하세요.",
	"quantity.gte":          "최소 1개 이상",
	"receivers.min":         "최소 1명 이상",
	"receivers.max":         "최대 10명까지",
	"receivers.unique":      "전화번호가 중복되었습니다.",
	"message.required":      "메시지를 입력하세요.",
	"sender.required":       "보내는 사람 이름을 입력하세요.",
	"ordererName.required":  "보내는 사람 이름을 입력하세요.",
	"email.required":        "이메일을 입력해주세요.",
	"email.email_addr":      "올바른 이메일 형식을 입력해주세요.",
	"password.required":     "비밀번호를 입력해주세요.",
	"password.min":          "비밀번호는 6자 이상이어야 합니다.",
	"required":              "필수 입력 항목입니다.",
}

// Validator is safe for concurrent use once built.
type Validator struct {
	v        *validator.Validate
	messages Messages
}

// New builds a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("kr_mobile", func(fl validator.FieldLevel) bool {
		return IsMobile(fl.Field().String())
	})
	_ = v.RegisterValidation("email_addr", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})

	return &Validator{v: v, messages: DefaultMessages}
}

// IsMobile reports whether s is 010 followed by exactly 8 digits.
func IsMobile(s string) bool { return mobilePattern.MatchString(s) }

// IsEmail reports whether s looks like an e-mail address.
func IsEmail(s string) bool { return emailPattern.MatchString(s) }

// Struct validates s. It returns nil, FieldErrors, or the validator's own
// error for invalid input such as a nil pointer.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		if _, ok := out[path]; ok {
			continue
		}
		out[path] = v.message(fe)
	}
	return out
}

// Var validates a single value against tag, reporting errors under field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := verrs[0]
	return FieldErrors{field: v.lookup(field, fe.Tag())}
}

func (v *Validator) message(fe validator.FieldError) string {
	return v.lookup(fe.Field(), fe.Tag())
}

func (v *Validator) lookup(field, tag string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if m, ok := v.messages[field+"."+tag]; ok {
		return m
	}
	if m, ok := v.messages[tag]; ok {
		return m
	}
	return "유효하지 않은 데이터입니다."
}

// fieldPath drops the leading struct type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
