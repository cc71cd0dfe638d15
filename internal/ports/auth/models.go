package auth

// Claims representa la identidad extraída del access token.
type Claims struct {
	UserID string
	Email  string
}
