package cerr

import (
	"fmt"
	"net/http"

	"connectrpc.com/connect"
)

// Code classifies an Error. The values line up with connect.Code so an Error
// converts without loss.
type Code int

const (
	OK Code = iota
	Canceled
	Unknown
	InvalidArgument
	DeadlineExceeded
	NotFound
	AlreadyExists
	PermissionDenied
	ResourceExhausted
	FailedPrecondition
	Aborted
	OutOfRange
	Unimplemented
	Internal
	Unavailable
	DataLoss
	Unauthenticated
)

type codeInfo struct {
	name   string
	status int
}

var codes = [...]codeInfo{
	OK:                 {"OK", http.StatusOK},
	Canceled:           {"Canceled", 499},
	Unknown:            {"Unknown", http.StatusInternalServerError},
	InvalidArgument:    {"InvalidArgument", http.StatusBadRequest},
	DeadlineExceeded:   {"DeadlineExceeded", http.StatusGatewayTimeout},
	NotFound:           {"NotFound", http.StatusNotFound},
	AlreadyExists:      {"AlreadyExists", http.StatusConflict},
	PermissionDenied:   {"PermissionDenied", http.StatusForbidden},
	ResourceExhausted:  {"ResourceExhausted", http.StatusTooManyRequests},
	FailedPrecondition: {"FailedPrecondition", http.StatusPreconditionFailed},
	Aborted:            {"Aborted", http.StatusConflict},
	OutOfRange:         {"OutOfRange", http.StatusBadRequest},
	Unimplemented:      {"Unimplemented", http.StatusNotImplemented},
	Internal:           {"Internal", http.StatusInternalServerError},
	Unavailable:        {"Unavailable", http.StatusServiceUnavailable},
	DataLoss:           {"DataLoss", http.StatusInternalServerError},
	Unauthenticated:    {"Unauthenticated", http.StatusUnauthorized},
}

func (c Code) valid() bool {
	return c >= 0 && int(c) < len(codes)
}

func (c Code) String() string {
	if !c.valid() {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	return codes[c].name
}

// ConnectCode returns the matching Connect code. OK maps to 0, which Connect
// does not define.
func (c Code) ConnectCode() connect.Code {
	if !c.valid() {
		return connect.CodeUnknown
	}
	return connect.Code(c)
}

func (c Code) HTTPCode() int {
	if !c.valid() {
		return http.StatusInternalServerError
	}
	return codes[c].status
}

// CodeOf returns the Code of a Connect error, or Unknown.
func CodeOf(err error) Code {
	c := Code(connect.CodeOf(err))
	if !c.valid() || c == OK {
		return Unknown
	}
	return c
}
