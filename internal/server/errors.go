package server

import "errors"

// ErrInvalidOrigin is returned by New when a CORS origin is malformed.
var ErrInvalidOrigin = errors.New("invalid CORS origin")

// NoInputMessage is the error returned for a scan request without a URL.
const NoInputMessage = "No input provided"

// errorResponse is the JSON body of every error response.
type errorResponse struct {
	Error string `json:"error"`
}

// errorBody builds an error response body.
func errorBody(msg string) errorResponse {
	return errorResponse{Error: msg}
}
