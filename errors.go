// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package chatopera

import "fmt"

// RemoteError is returned by every endpoint method when the service responds
// with a status other than 200 OK. The body is left as-is, since it is not
// guaranteed to be JSON.
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %q unexpected HTTP response status: %s", e.Method, e.Path, e.Status)
}

// MalformedResponseError is returned when the service responds with 200 OK,
// but the body is not valid JSON.
type MalformedResponseError struct {
	Body []byte
	Err  error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return "response body is not valid JSON"
	}

	return "response body is not valid JSON: " + e.Err.Error()
}

// Cause satisfies the github.com/pkg/errors causer interface.
func (e *MalformedResponseError) Cause() error { return e.Err }

// Unwrap returns the underlying parse error.
func (e *MalformedResponseError) Unwrap() error { return e.Err }

// UnexpectedResponseError is returned by IsMuted when the response is valid
// JSON, but does not report success (rc missing or non-zero) or does not carry
// the mute flag in a recognizable shape.
type UnexpectedResponseError struct {
	Path     string
	Reason   string
	Response *Response
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response from %q: %s", e.Path, e.Reason)
}
