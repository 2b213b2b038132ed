package api

import "fmt"

// NetworkError covers transport failures and non-2xx responses: the request
// never produced a usable application-level answer.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AppError is a server-reported failure: the request completed but the server
// answered success:false or an error field.
type AppError struct {
	Op      string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
