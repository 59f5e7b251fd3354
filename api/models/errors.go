package models

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type UnauthenticatedResponse struct {
	Error    string `json:"error"`
	LoginURL string `json:"login_url"`
}
