// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"github.com/taibuivan/tributestream/internal/platform/validate"
)

// Form checks run before any upstream call. Each returns a VALIDATION_ERROR
// carrying every failed field, or nil.

func validateLogin(input loginRequest) error {
	validator := &validate.Validator{}
	validator.RequiredMsg(FieldIdentifier, input.Identifier, msgIdentifierRequired).
		RequiredMsg(FieldPassword, input.Password, msgPasswordRequired)
	return validator.Err()
}

func validateRegister(input registerRequest) error {
	validator := &validate.Validator{}

	if input.Username == "" {
		validator.RequiredMsg(FieldUsername, input.Username, msgUsernameRequired)
	} else {
		validator.MinLen(FieldUsername, input.Username, UsernameMinLength, msgUsernameTooShort).
			MaxLen(FieldUsername, input.Username, UsernameMaxLength, msgUsernameTooLong).
			Match(FieldUsername, input.Username, usernamePattern, msgUsernameCharset)
	}

	validator.Email(FieldEmail, input.Email, msgEmailInvalid)
	passwordRules(validator, input.Password)

	return validator.Err()
}

func validateForgotPassword(input forgotPasswordRequest) error {
	validator := &validate.Validator{}
	validator.Email(FieldEmail, input.Email, msgEmailInvalid)
	return validator.Err()
}

func validateResetPassword(input resetPasswordRequest) error {
	validator := &validate.Validator{}
	passwordRules(validator, input.Password)
	validator.RequiredMsg(FieldPasswordConfirmation, input.PasswordConfirmation, msgConfirmationRequired).
		RequiredMsg(FieldCode, input.Code, msgCodeRequired)

	if input.PasswordConfirmation != "" {
		validator.Equal(FieldPasswordConfirmation, input.PasswordConfirmation, input.Password, msgPasswordsMismatch)
	}

	return validator.Err()
}

func passwordRules(validator *validate.Validator, password string) {
	if password == "" {
		validator.RequiredMsg(FieldPassword, password, msgPasswordRequired)
		return
	}
	validator.MinLen(FieldPassword, password, PasswordMinLength, msgPasswordTooShort).
		Match(FieldPassword, password, upperPattern, msgPasswordNeedsUpper).
		Match(FieldPassword, password, lowerPattern, msgPasswordNeedsLower).
		Match(FieldPassword, password, digitPattern, msgPasswordNeedsDigit)
}
