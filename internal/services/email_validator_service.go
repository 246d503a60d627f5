package services

import "context"

// EmailValidator checks a signup address beyond its syntax, e.g. against
// a reputation service.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

type LocalValidator struct{}

func NewLocalValidator() *LocalValidator {
	return &LocalValidator{}
}

func (v *LocalValidator) Validate(
	ctx context.Context,
	email string,
) error {
	// Syntax already checked by the service, so just accept
	return nil
}
