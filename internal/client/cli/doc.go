// Package cli provides the userauth command-line client.
//
// Each invocation runs one command against the auth server:
//   - register: prompt for name, email and password, create the account
//   - login: prompt for email and password, obtain a token
//   - profile: show the current user using the saved token
//   - logout: forget the saved token
//   - health: check that the server and its database respond
//
// Register and login save the access token in the configured token file so
// that later profile calls can use it. Passwords are read without echo when
// stdin is a terminal.
package cli
