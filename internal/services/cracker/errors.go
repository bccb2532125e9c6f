package cracker

import "github.com/pkg/errors"

var ErrInvalidTask = errors.New("invalid task")
var ErrSecretNotFound = errors.New("secret not found")
var ErrIndexOverflow = errors.New("candidate index space overflows uint64")
var ErrLengthTooLong = errors.New("candidate length exceeds buffer capacity")
var ErrEmptyAlphabet = errors.New("alphabet is empty")
var ErrWorkerFailed = errors.New("worker failed")
