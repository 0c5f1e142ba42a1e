package domain

// Identity is the decoded claim set of a verified token.
type Identity struct {
	Email  string         `json:"email"`
	Claims map[string]any `json:"-"`
}

// NewIdentity builds an Identity from raw claims. A missing or non-string
// email claim leaves Email empty.
func NewIdentity(claims map[string]any) Identity {
	email, _ := claims["email"].(string)
	return Identity{Email: email, Claims: claims}
}

type (
	TokenResponse struct {
		Token string `json:"token"`
	}

	LogOutResponse struct {
		Success bool `json:"success"`
	}
)
