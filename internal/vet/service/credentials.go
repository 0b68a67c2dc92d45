package service

import "crypto/subtle"

// accounts are the only two principals the clinic knows. The user name is
// also the role.
var accounts = map[string]string{
	"admin": "admin",
	"user":  "user",
}

// CheckCredentials reports whether user and password match a known account.
func CheckCredentials(user, password string) bool {
	want, ok := accounts[user]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(password)) == 1
}
