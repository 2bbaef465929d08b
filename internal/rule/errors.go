package rule

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every configuration error in this package.
	ErrValidation = errors.New("invalid rename rule")

	// ErrInsufficientArguments indicates a rule received the wrong number of arguments.
	ErrInsufficientArguments = fmt.Errorf("%w: insufficient arguments", ErrValidation)

	// ErrInvalidArgument indicates an argument was present but malformed.
	ErrInvalidArgument = fmt.Errorf("%w: invalid argument", ErrValidation)

	// ErrUnknownRule indicates the rule kind is not recognized.
	ErrUnknownRule = fmt.Errorf("%w: no such rename rule", ErrValidation)

	// ErrUnknownMask indicates the mask is not recognized.
	ErrUnknownMask = fmt.Errorf("%w: no such rename mask", ErrValidation)

	// ErrInvalidName indicates a rule produced a name that cannot be used as a
	// directory entry.
	ErrInvalidName = fmt.Errorf("%w: invalid file name", ErrValidation)
)
