package usecase

import "github.com/m-mizutani/goerr/v2"

// ErrSaveFailed marks a persistence failure on save. It is recoverable:
// the in-memory state stays valid and the caller should surface a warning
// rather than abort the session.
var ErrSaveFailed = goerr.New("scenario save failed")
