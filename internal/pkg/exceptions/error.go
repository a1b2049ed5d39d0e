package exceptions

import (
	"errors"
	"fmt"
	"homevisit-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"-"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"error,omitempty"`
	Locations     []Location `json:"-"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

// Unwrap exposes the cause so driver labels such as TransientTransactionError
// stay visible to the mongo session retry loop.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError records the caller location. When err is itself a
// CustomError its locations are kept after the new one.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	locations := []Location{getLocation(3)}
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
		var previous *CustomError
		if errors.As(err, &previous) {
			locations = append(locations, previous.Locations...)
		}
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     locations,
		Err:           err,
	}
}

// StatusCodeOf reports the HTTP status an error maps to.
func StatusCodeOf(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return constvars.StatusInternalServerError
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         "unknown",
			Line:         0,
			FunctionName: "unknown",
		}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}
