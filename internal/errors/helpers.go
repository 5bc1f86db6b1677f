package errors

import "errors"

// As is errors.As from the standard library
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is is errors.Is from the standard library
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost *Error in the chain.
// Nil is OK and uncoded errors are Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error in the chain
func GetMeta(err error) map[string]any {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Meta
	}
	return nil
}

// HasCode reports whether err carries code
func HasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

func IsNotFound(err error) bool           { return HasCode(err, CodeNotFound) }
func IsInvalidArgument(err error) bool    { return HasCode(err, CodeInvalidArgument) }
func IsAlreadyExists(err error) bool      { return HasCode(err, CodeAlreadyExists) }
func IsFailedPrecondition(err error) bool { return HasCode(err, CodeFailedPrecondition) }
func IsAborted(err error) bool            { return HasCode(err, CodeAborted) }
func IsInternal(err error) bool           { return HasCode(err, CodeInternal) }
func IsUnavailable(err error) bool        { return HasCode(err, CodeUnavailable) }
