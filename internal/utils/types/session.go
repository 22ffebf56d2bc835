package types

const (
	SessionValid   = "valid"
	SessionRevoked = "revoked"
)

// Session is the server-side record the auth service writes on login under
// key session:<userID>. The messaging core only reads it during the
// websocket handshake.
type Session struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	IssueAt  int64  `json:"issue_at"`
	ExpireAt int64  `json:"expire_at"`
}
