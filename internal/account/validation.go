// File: internal/account/validation.go
package account

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"adventure_backend/internal/common"

	"github.com/go-playground/validator/v10"
)

const birthdayLayout = "1/2/2006"

// formValidator applies the form rules in the order the screens check them: required
// fields, password length, avatar, birthday. Email format is checked last.
type formValidator struct {
	validate       *validator.Validate
	minPasswordLen int
	avatars        AvatarCatalog
}

func newFormValidator(minPasswordLen int, avatars AvatarCatalog) *formValidator {
	return &formValidator{
		validate:       validator.New(),
		minPasswordLen: minPasswordLen,
		avatars:        avatars,
	}
}

func (v *formValidator) checkLogin(req *LoginRequest) error {
	return v.checkRequired(req)
}

func (v *formValidator) checkRegistration(req *RegisterRequest) error {
	if req.IsQuick() {
		if err := v.checkRequired(&quickForm{
			Email:       req.Email,
			Password:    req.Password,
			DisplayName: req.DisplayName,
		}); err != nil {
			return err
		}
		if err := v.checkPassword(req.Password); err != nil {
			return err
		}
		return v.checkEmail(req.Email)
	}

	if err := v.checkRequired(&fullForm{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  req.Birthday,
	}); err != nil {
		return err
	}
	if err := v.checkPassword(req.Password); err != nil {
		return err
	}
	if req.PhotoURL == "" {
		return ErrAvatarRequired
	}
	if !v.avatars.Contains(req.PhotoURL) {
		return ErrAvatarRequired.WithDetails("The selected avatar is not one of the available presets.")
	}
	if err := v.validate.Var(req.Birthday, "datetime="+birthdayLayout); err != nil {
		return ErrInvalidBirthday.WithDetails(map[string]string{"birthday": req.Birthday})
	}
	return v.checkEmail(req.Email)
}

func (v *formValidator) checkRequired(form interface{}) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ErrMissingFields.WithDetails(common.FormatValidationErrors(ve))
	}
	return common.ErrBadRequest.WithDetails(err.Error())
}

func (v *formValidator) checkPassword(password string) error {
	if utf8.RuneCountInString(password) < v.minPasswordLen {
		return ErrWeakPassword.WithMessage(fmt.Sprintf("Password must be at least %d characters", v.minPasswordLen))
	}
	return nil
}

func (v *formValidator) checkEmail(email string) error {
	if err := v.validate.Var(email, "email"); err != nil {
		return ErrInvalidEmail.WithDetails(map[string]string{"email": email})
	}
	return nil
}
