package objects

import "github.com/MagedNabil/graphQL/internal/store"

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// UserInfo is the profile shape exposed over the transport. It never carries
// the password.
type UserInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       *int32 `json:"age,omitempty"`
}

// NewUserInfo strips a stored user down to its transport-safe fields.
func NewUserInfo(user *store.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Age:       user.Age,
	}
}
