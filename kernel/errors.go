package kernel

import "errors"

// ErrEmptyQuestion is reported by Run when the question is blank.
var ErrEmptyQuestion = errors.New("please enter a question")
