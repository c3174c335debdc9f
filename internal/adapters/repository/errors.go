package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrSchoolNotFound  = errors.New("school not found")
	ErrDuplicateReview = errors.New("review already exists for this user, school, and sport")
)
