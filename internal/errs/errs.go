package errs

import "errors"

var ErrMissingField = errors.New("required field is missing")
var ErrInvalidToken = errors.New("invalid token")
var ErrUnknownCurrency = errors.New("unknown currency")

var ErrGatewayUnavailable = errors.New("gateway communication failed")
var ErrGatewayBadResponse = errors.New("gateway returned malformed response")
var ErrGatewayMissingField = errors.New("gateway response is missing a field")
var ErrGatewayRejected = errors.New("gateway rejected the invoice")
