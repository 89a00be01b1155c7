package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptScope asks for whichever scope fields are still empty.
func PromptScope(scope *Scope) error {
	var fields []huh.Field
	if scope.ExperienceID == "" {
		fields = append(fields, huh.NewInput().
			Title("Experience ID").
			Placeholder("exp_...").
			Value(&scope.ExperienceID).
			Validate(required("experience id")))
	}
	if scope.UserID == "" {
		fields = append(fields, huh.NewInput().
			Title("User ID").
			Placeholder("user_...").
			Value(&scope.UserID).
			Validate(required("user id")))
	}
	if len(fields) == 0 {
		return nil
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}
	scope.ExperienceID = strings.TrimSpace(scope.ExperienceID)
	scope.UserID = strings.TrimSpace(scope.UserID)
	return nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}
