package auth

// AuthRequest carries the moderator password.
// @Description Moderator credential
type AuthRequest struct {
	Password string `json:"password" example:"hunter2"`
}
