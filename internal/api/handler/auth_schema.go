package handler

// --- Request / Response types ---

type loginRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
}

type logoutResponse struct {
	Message string `json:"message"`
}

// statusResponse serialises user_id as null for anonymous callers, which is
// why the field is a pointer without omitempty.
type statusResponse struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	UserID          *int64 `json:"user_id"`
}
