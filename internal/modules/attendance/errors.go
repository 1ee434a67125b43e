package attendance

import "errors"

var (
	ErrLectureNotFound  = errors.New("lecture not found")
	ErrNotLectureOwner  = errors.New("lecture belongs to another teacher")
	ErrAlreadySubmitted = errors.New("attendance already submitted")
	ErrNothingToSubmit  = errors.New("no marks to submit")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrTeacherNotFound  = errors.New("teacher not found")
)
