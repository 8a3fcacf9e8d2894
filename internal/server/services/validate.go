package services

import (
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewBookmark is the input of BookmarkService.Create.
type NewBookmark struct {
	Title       string  `validate:"required,max=500"`
	Link        string  `validate:"required,url,max=2048"`
	Description *string `validate:"omitempty,max=5000"`
}

// BookmarkChanges is the input of BookmarkService.Edit. Nil fields are left
// unchanged; a present title or link must still be valid.
type BookmarkChanges struct {
	Title       *string `validate:"omitempty,min=1,max=500"`
	Link        *string `validate:"omitempty,url,max=2048"`
	Description *string `validate:"omitempty,max=5000"`
}

// ProfileChanges is the input of UserService.Edit.
type ProfileChanges struct {
	Email     *string `validate:"omitempty,email"`
	FirstName *string `validate:"omitempty,max=100"`
	LastName  *string `validate:"omitempty,max=100"`
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
