package twitter

import "errors"

var (
	ErrBrowserNotReady     = errors.New("twitter: browser not initialized")
	ErrElementTimeout      = errors.New("twitter: element not found before timeout")
	ErrLayoutChanged       = errors.New("twitter: page layout changed")
	ErrLoginFailed         = errors.New("twitter: login failed")
	ErrChallenge           = errors.New("twitter: verification challenge required")
	ErrCredentialsNotFound = errors.New("twitter: credentials not found")
	ErrInvalidUsername     = errors.New("twitter: invalid username")
)
