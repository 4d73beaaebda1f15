package core

import (
	"strconv"
	"strings"
)

// Profile holds the settings page of one user.
type Profile struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Department         string `json:"department"`
	Theme              string `json:"theme"`
	EmailNotifications bool   `json:"emailNotifications"`
}

type ProfileForm struct {
	Name               string `form:"name" json:"name" validate:"required"`
	Email              string `form:"email" json:"email" validate:"required,basicemail" jsonschema:"format=email"`
	Phone              string `form:"phone" json:"phone,omitempty"`
	Department         string `form:"department" json:"department,omitempty"`
	Theme              string `form:"theme" json:"theme,omitempty" validate:"oneof=light dark system" jsonschema:"enum=light,enum=dark,enum=system"`
	EmailNotifications string `form:"emailNotifications" json:"emailNotifications,omitempty" validate:"boolean"`
}

// DefaultProfile is the profile shown before a user has saved settings.
func DefaultProfile(u *User) Profile {
	return Profile{
		Name:               u.Name,
		Email:              u.Email,
		Department:         u.Department,
		Theme:              "system",
		EmailNotifications: true,
	}
}

// ProfileFields renders p as form fields.
func ProfileFields(p Profile) Fields {
	return Fields{
		"name":               p.Name,
		"email":              p.Email,
		"phone":              p.Phone,
		"department":         p.Department,
		"theme":              p.Theme,
		"emailNotifications": strconv.FormatBool(p.EmailNotifications),
	}
}

// SubmitProfile validates a settings submission.
func SubmitProfile(fields Fields) (Profile, error) {
	f := fields.Clone()
	f["email"] = strings.ToLower(f["email"])
	defaultIfEmpty(f, "theme", "system")
	defaultIfEmpty(f, "emailNotifications", "false")

	var form ProfileForm
	if err := decodeFields(f, &form); err != nil {
		return Profile{}, &ValidationError{Fields: FieldErrors{"_form": "The form could not be read"}}
	}
	if errs := structErrors(&form, map[string]string{"emailNotifications": "Email notifications"}); len(errs) > 0 {
		return Profile{}, &ValidationError{Fields: errs}
	}
	notify, _ := strconv.ParseBool(form.EmailNotifications)
	return Profile{
		Name:               form.Name,
		Email:              form.Email,
		Phone:              form.Phone,
		Department:         form.Department,
		Theme:              form.Theme,
		EmailNotifications: notify,
	}, nil
}
