package user

import "errors"

var ErrInvalidCredentials = errors.New("user: invalid credentials")

// Identity is the locally cached profile of the signed-in user. It is
// written once at login and read-only everywhere else; the chat core never
// looks it up ambiently, handlers pass the resolved ID in explicitly.
type Identity struct {
	ID       string
	Nickname string
	Colonia  string
	City     string
	State    string
}
