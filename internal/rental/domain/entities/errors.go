package entities

import "movierental/internal/rental/domain/errs"

// Ошибки валидации атрибутов.
var (
	ErrTitleMissing         = errs.Validation("title must not be null nor empty")
	ErrReleaseDateMissing   = errs.Validation("release date must not be null")
	ErrAgeRatingOutOfRange  = errs.Validation("age rating must be in range [0, 18]")
	ErrPriceCategoryMissing = errs.Validation("price category must not be null")
	ErrNameMissing          = errs.Validation("non-existing name")
	ErrInvalidName          = errs.Validation("invalid name value")
	ErrInvalidBirthdate     = errs.Validation("illegal birthdate")
	ErrInvalidRentalDate    = errs.Validation("rental date must not be null or in the future.")
)

// Нарушения правил, связывающих пользователя, фильм и прокат.
var (
	ErrUserMissing      = errs.Rule("user must not be null.")
	ErrMovieUnavailable = errs.Rule("movie must not be null or is already rented.")
	ErrTooManyRentals   = errs.Rule("max. 3 movies can be rented")
	ErrUserTooYoung     = errs.Rule("user is not old enough to rent this movie")
	ErrUserIDChanged    = errs.Rule("illegal change of user's id")
	ErrRentalIDChanged  = errs.Rule("illegal change of rental's id")
)

// Ошибки поиска.
var (
	ErrMovieNotFound  = errs.NotFound("movie not found")
	ErrUserNotFound   = errs.NotFound("user not found")
	ErrRentalNotFound = errs.NotFound("rental not found")
)
