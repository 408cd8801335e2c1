package service

// ResponseType enumerates the outcomes a service call can report back to a
// handler
type ResponseType int

const (
	// InvalidData response
	InvalidData ResponseType = iota

	// Error response
	Error

	// Forbidden response
	Forbidden

	// NotFound response
	NotFound

	// Success response
	Success

	// GatewayRejected - the payment gateway refused the request
	GatewayRejected

	// GatewayUnavailable - the payment gateway could not be reached
	GatewayUnavailable
)

var vals = [...]string{
	"invalid-data",
	"error",
	"forbidden",
	"not-found",
	"success",
	"gateway-rejected",
	"gateway-unavailable",
}

// String representation of `ResponseType`
func (a ResponseType) String() string {
	return vals[a]
}
