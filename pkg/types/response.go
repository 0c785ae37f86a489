package types

// SuccessEnvelope wraps every successful API payload: session views,
// quotes, created orders, and shipment lookups all ride under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public face of a coded error. Details is only
// populated for codes whose metadata allows it, so validation feedback
// reaches the storefront while internal causes stay private.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every failed API response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
