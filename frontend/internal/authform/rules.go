package authform

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// RE2's \S only excludes ASCII space, browsers also exclude Unicode spaces
// and the BOM; emailPattern spells the browser's set out.
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z_]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}]+@[^\s\p{Z}\x{FEFF}]+\.[^\s\p{Z}\x{FEFF}]+$`)
	passwordPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Tag order is evaluation order: required, then length, then pattern.
// validator stops at the first failing tag of a field. Lengths are counted
// in UTF-16 code units, as browsers count minLength.

type loginForm struct {
	Email    string `form:"email" validate:"required,utf16min=8,email_shape"`
	Password string `form:"password" validate:"required,utf16min=6,digits_only"`
}

type signUpForm struct {
	Username string `form:"username" validate:"required,utf16min=5,letters_underscore"`
	Email    string `form:"email" validate:"required,utf16min=8,email_shape"`
	Password string `form:"password" validate:"required,utf16min=6,digits_only"`
	Confirm  string `form:"confirm" validate:"required,eqfield=Password"`
}

// messages holds the user-facing text per field and failing tag.
var messages = map[Field]map[string]string{
	FieldUsername: {
		"required":           "Name is required",
		"utf16min":           "Name must be at least 5 characters",
		"letters_underscore": "Only letters are allowed",
	},
	FieldEmail: {
		"required":    "Email is required",
		"utf16min":    "Email must be at least 8 characters",
		"email_shape": "Invalid email address",
	},
	FieldPassword: {
		"required":    "Password is required",
		"utf16min":    "Password must be at least 6 characters",
		"digits_only": "Password must contain only numbers",
	},
	FieldConfirm: {
		"required": "Please confirm your password",
		"eqfield":  "Passwords do not match",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	mustRegister(v, "letters_underscore", usernamePattern)
	mustRegister(v, "email_shape", emailPattern)
	mustRegister(v, "digits_only", passwordPattern)
	if err := v.RegisterValidation("utf16min", utf16Min); err != nil {
		panic("registering validation utf16min: " + err.Error())
	}
	return v
}

func utf16Min(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic("utf16min needs an integer parameter, got " + fl.Param())
	}
	return utf16Len(fl.Field().String()) >= n
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic("registering validation " + tag + ": " + err.Error())
	}
}

// validateValues runs the rule set of mode m over values. Hidden fields are
// not part of the rule set and never produce errors.
func validateValues(m Mode, values FormValues) ValidationErrors {
	var form any
	switch m {
	case ModeSignUp:
		form = signUpForm{
			Username: values.Username,
			Email:    values.Email,
			Password: values.Password,
			Confirm:  values.Confirm,
		}
	default:
		form = loginForm{Email: values.Email, Password: values.Password}
	}

	errs := ValidationErrors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// only InvalidValidationError is left, which means a programming error
		panic(err)
	}
	for _, fe := range verrs {
		field := Field(fe.Field())
		if _, seen := errs[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		errs[field] = msg
	}
	return errs
}
