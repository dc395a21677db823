package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

const (
	maxNameLength     = 50
	minPasswordLength = 8
	maxPasswordLength = 58
	maxTweetLength    = 280
)

func ValidateRegister(username, email, firstName, lastName, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateName("user_name", "User name", username, errs)
	validateEmail("email", "Email", email, errs)
	validateName("first_name", "First name", firstName, errs)
	validateName("last_name", "Last name", lastName, errs)
	validatePassword(password, errs)

	return errs
}

// ValidateUserPatch checks only the fields that are being changed.
func ValidateUserPatch(email, firstName, lastName *string) ValidationErrors {
	errs := make(ValidationErrors)

	if email != nil {
		validateEmail("email", "Email", *email, errs)
	}
	if firstName != nil {
		validateName("first_name", "First name", *firstName, errs)
	}
	if lastName != nil {
		validateName("last_name", "Last name", *lastName, errs)
	}

	return errs
}

func ValidateLogin(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("user_name", "User name is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateTweet(content string) ValidationErrors {
	errs := make(ValidationErrors)

	n := utf8.RuneCountInString(content)
	if strings.TrimSpace(content) == "" {
		errs.Add("content", "Content is required")
	} else if n > maxTweetLength {
		errs.Add("content", fmt.Sprintf("Content must be at most %d characters", maxTweetLength))
	}

	return errs
}

// ValidateEditTweet checks the content only when the patch sets it.
func ValidateEditTweet(content *string) ValidationErrors {
	if content == nil {
		return make(ValidationErrors)
	}
	return ValidateTweet(*content)
}

// ValidatePostTweet checks the content and the embedded author, which is
// stored as a full user record.
func ValidatePostTweet(content string, by domain.User) ValidationErrors {
	errs := ValidateTweet(content)

	if by.ID == uuid.Nil {
		errs.Add("by.user_id", "Author user ID is required")
	}
	validateName("by.user_name", "Author user name", by.UserName, errs)
	validateEmail("by.email", "Author email", by.Email, errs)
	validateName("by.first_name", "Author first name", by.FirstName, errs)
	validateName("by.last_name", "Author last name", by.LastName, errs)

	return errs
}

// validateName measures the value as stored, surrounding spaces included.
func validateName(field, label, value string, errs ValidationErrors) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, label+" is required")
	} else if utf8.RuneCountInString(value) > maxNameLength {
		errs.Add(field, fmt.Sprintf("%s must be at most %d characters", label, maxNameLength))
	}
}

// validateEmail accepts a bare address only; display names and angle
// brackets are rejected.
func validateEmail(field, label, email string, errs ValidationErrors) {
	if strings.TrimSpace(email) == "" {
		errs.Add(field, label+" is required")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs.Add(field, "Invalid email address")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength {
		errs.Add("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	} else if n > maxPasswordLength {
		errs.Add("password", fmt.Sprintf("Password must be at most %d characters", maxPasswordLength))
	}
}
