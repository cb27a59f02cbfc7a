package handler

import "github.com/labstack/echo/v4"

// UserIDContextKey is where the auth middleware stores the validated subject.
const UserIDContextKey = "user_id"

// currentUserID extracts the user id injected by the auth middleware, or nil
// when the request is anonymous (no token, invalid token, or auth disabled).
func currentUserID(c echo.Context) *int64 {
	if id, ok := c.Get(UserIDContextKey).(int64); ok {
		return &id
	}
	return nil
}
