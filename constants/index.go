package constants

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_STAFF = "STAFF"
)

const (
	ERROR_INPUT                = "INVALID_INPUT"
	ERROR_INTERNAL_ERROR       = "INTERNAL_ERROR"
	ERROR_PARSE_DATA_TO_LOCALS = "PARSE_DATA_TO_LOCALS_FAIL"
	DATA_INPUT_IS_NOT_NUMBER   = "DATA_INPUT_IS_NOT_NUMBER"
	NOT_ADMIN                  = "NOT_ADMIN"
	MISSING_LOGIN_INPUT        = "MISSING_LOGIN_INPUT"
	INVALID_USERNAME           = "INVALID_USERNAME"
	INVALID_PASSWORD           = "INVALID_PASSWORD"
	ACCOUNT_NOT_ACTIVE         = "ACCOUNT_NOT_ACTIVE"

	EVENT_NOT_FOUND    = "EVENT_NOT_FOUND"
	TIER_NOT_FOUND     = "TIER_NOT_FOUND"
	TICKET_NOT_FOUND   = "TICKET_NOT_FOUND"
	OUT_OF_STOCK       = "OUT_OF_STOCK"
	NOT_ENOUGH_POINTS  = "NOT_ENOUGH_POINTS"
	CUSTOMER_NOT_FOUND = "CUSTOMER_NOT_FOUND"
	PAYMENT_INVALID    = "PAYMENT_INVALID"
)
