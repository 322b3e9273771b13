package main

import (
	"errors"
	"net/http"
)

// The closed set of domain errors. Everything the service layer can fail
// with is one of these; anything else reaching the normalizer is treated as
// unexpected and its text is never echoed to the client.

// NotFoundError means the video does not exist, is inaccessible, or the URL
// was rejected outright.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConversionError covers every failure of the extraction/transcoding run
// itself: nonzero exit, timeout, unparsable tool output.
type ConversionError struct {
	Message string
}

func (e *ConversionError) Error() string { return e.Message }

// SetupError means the host is missing the external tool.
type SetupError struct {
	Message string
}

func (e *SetupError) Error() string { return e.Message }

// ValidationError is a request-shape failure with per-field details.
type ValidationError struct {
	Details []ErrorDetail
}

func (e *ValidationError) Error() string { return "Input validation failed." }

const (
	codeVideoNotFound    = "VIDEO_NOT_FOUND"
	codeConversionFailed = "VIDEO_CONVERSION_FAILED"
	codeServerConfig     = "SERVER_CONFIGURATION_ERROR"
	codeValidation       = "VALIDATION_ERROR"
	codeUnexpected       = "UNEXPECTED_ERROR"
)

// normalizeError maps any error to an HTTP status and a well-formed error
// envelope. Unrecognized errors get a fixed generic message so internal
// diagnostics never leak into a response body.
func normalizeError(err error) (int, Response) {
	var (
		notFound   *NotFoundError
		conversion *ConversionError
		setup      *SetupError
		validation *ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, errResponse(codeVideoNotFound, notFound.Message, nil)
	case errors.As(err, &conversion):
		return http.StatusInternalServerError, errResponse(codeConversionFailed, conversion.Message, nil)
	case errors.As(err, &setup):
		return http.StatusInternalServerError, errResponse(codeServerConfig, setup.Message, nil)
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, errResponse(codeValidation, "Input validation failed.", validation.Details)
	default:
		return http.StatusInternalServerError, errResponse(codeUnexpected, "An unexpected internal server error occurred.", nil)
	}
}

func errResponse(code, message string, details []ErrorDetail) Response {
	return Response{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
