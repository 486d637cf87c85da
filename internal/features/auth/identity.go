package auth

// Identity is the caller resolved from a valid Active token. It lives for one request.
type Identity struct {
	UserID    string  `json:"user_id"`
	Token     string  `json:"token"`
	AppID     *string `json:"app_id,omitempty"`
	AppHandle *string `json:"app_handle,omitempty"`
	OpenID    *string `json:"open_id,omitempty"`
}
