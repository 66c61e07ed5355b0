package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrTestNotFound       = errors.New("test not found")
	ErrInvalidDifficulty  = errors.New("invalid difficulty level")
	ErrProgressNotFound   = errors.New("test progress not found")
	ErrHistoryNotFound    = errors.New("test history not found")
	ErrNoTestHistory      = errors.New("no test results found for user")
	ErrOrtSampleNotFound  = errors.New("ort sample not found")
	ErrAiQuestionNotFound = errors.New("ai question not found")
)

// GenerationError wraps a failed external text generation call so the
// boundary layer can map it to 502 while keeping the upstream message.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "text generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
