package services

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	displayPhonePattern = regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$`)
)

// ValidName reports whether name has at least 2 characters once trimmed.
func ValidName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= 2
}

// ValidEmail reports whether email looks like local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword reports whether password has at least 6 characters.
func ValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= 6
}

// ValidMessage reports whether message has at least 10 characters once trimmed.
func ValidMessage(message string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(message)) >= 10
}

// ValidPhone reports whether phone has 10 or 11 digits, ignoring everything else.
func ValidPhone(phone string) bool {
	n := len(digitsOnly(phone))
	return n == 10 || n == 11
}

// ValidDisplayPhone reports whether phone is exactly in the +7 (XXX) XXX-XX-XX form.
func ValidDisplayPhone(phone string) bool {
	return displayPhonePattern.MatchString(phone)
}

// NormalizePhone turns any phone input into the canonical 11-digit form
// starting with 7. Applying it twice gives the same result as applying it once.
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}
	cleaned := digitsOnly(phone)
	if strings.HasPrefix(cleaned, "8") {
		cleaned = "7" + cleaned[1:]
	}
	if !strings.HasPrefix(cleaned, "7") {
		cleaned = "7" + cleaned
	}
	if len(cleaned) > 11 {
		cleaned = cleaned[:11]
	}
	return cleaned
}

// FormatPhone renders phone as +7 (XXX) XXX-XX-XX. Input that does not
// normalize to 11 digits is returned unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	n := NormalizePhone(phone)
	if len(n) != 11 {
		return phone
	}
	return "+7 (" + n[1:4] + ") " + n[4:7] + "-" + n[7:9] + "-" + n[9:11]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var fieldMessages = map[string]string{
	"required":      "This field is required",
	"person_name":   "Name must be at least 2 characters",
	"site_email":    "Enter a valid email",
	"phone_digits":  "Enter a valid phone number",
	"display_phone": "Enter a valid phone number",
	"password":      "Password must be at least 6 characters",
	"accepted":      "You must accept the terms",
	"long_message":  "Message must be at least 10 characters",
}

// newValidator returns a validator that knows the storefront's field rules
// and reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	stringRule := func(fn func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool { return fn(fl.Field().String()) }
	}
	_ = v.RegisterValidation("person_name", stringRule(ValidName))
	_ = v.RegisterValidation("site_email", stringRule(ValidEmail))
	_ = v.RegisterValidation("phone_digits", stringRule(ValidPhone))
	_ = v.RegisterValidation("display_phone", stringRule(ValidDisplayPhone))
	_ = v.RegisterValidation("password", stringRule(ValidPassword))
	_ = v.RegisterValidation("long_message", stringRule(ValidMessage))
	_ = v.RegisterValidation("accepted", func(fl validator.FieldLevel) bool { return fl.Field().Bool() })
	_ = v.RegisterValidation("notblank", stringRule(func(s string) bool {
		return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
	}))
	return v
}

// checkStruct validates s and converts failures into a *ValidationError.
func checkStruct(v *validator.Validate, s interface{}) *ValidationError {
	verr := &ValidationError{}
	err := v.Struct(s)
	if err == nil {
		return verr
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("form", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = fieldMessages["required"]
		}
		verr.Add(fe.Field(), msg)
	}
	return verr
}
