package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// OrderNotFoundError represents a request referencing an order id that is
	// neither in the order book nor in the stop order book.
	OrderNotFoundError ErrorCode = "order_not_found_error"
	// SecurityNotFoundError represents a request referencing an unknown ISIN.
	SecurityNotFoundError ErrorCode = "security_not_found_error"
	// BrokerNotFoundError represents a request referencing an unknown broker id.
	BrokerNotFoundError ErrorCode = "broker_not_found_error"
	// ShareholderNotFoundError represents a request referencing an unknown shareholder id.
	ShareholderNotFoundError ErrorCode = "shareholder_not_found_error"
	// InvalidRequestError represents a request that failed field validation.
	InvalidRequestError ErrorCode = "invalid_request_error"
	// InvalidPeakSizeError represents an iceberg request with an unusable peak size.
	InvalidPeakSizeError ErrorCode = "invalid_peak_size_error"
	// StopOrderInAuctionError represents a stop order operation while the
	// security is in auction state.
	StopOrderInAuctionError ErrorCode = "stop_order_in_auction_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
)

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "order quantity is not a multiple of the lot size".
	Message string

	// Code (required) is the user-defined error code string.
	// E.g. "order_not_found_error".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
func ErrorCodeEquals(err error, code string) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}

	return errDetails.Code == code
}
