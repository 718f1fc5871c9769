package dto

// LoginResponse is the body returned by a successful login or refresh. The
// refresh token itself travels only in the httpOnly cookie, never in the
// body.
type LoginResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	AuthToken  string `json:"authToken"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
