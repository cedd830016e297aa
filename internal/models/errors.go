package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrUsernameNotUnique       = errors.New("this username is already taken")
	ErrBudgetCategoryNotUnique = errors.New("a budget for this category already exists")
	ErrAlreadyMember           = errors.New("the user is already a member of this group")
)
