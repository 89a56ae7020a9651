package dto

import domainuser "compramex/internal/domain/user"

// UserProfile is the cached identity object.
type UserProfile struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Colonia  string `json:"colonia"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// AuthResponse pairs the identity with its opaque session token.
type AuthResponse struct {
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}

// MapUserProfile converts a cached identity.
func MapUserProfile(identity domainuser.Identity) UserProfile {
	return UserProfile{
		ID:       identity.ID,
		Nickname: identity.Nickname,
		Colonia:  identity.Colonia,
		City:     identity.City,
		State:    identity.State,
	}
}

// NewAuthResponse builds the login/register payload.
func NewAuthResponse(identity domainuser.Identity, token string) AuthResponse {
	return AuthResponse{User: MapUserProfile(identity), Token: token}
}
