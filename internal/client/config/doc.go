// Package config loads runtime configuration for the userauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables USERAUTH_SERVER_URL, USERAUTH_TIMEOUT and
//     USERAUTH_TOKEN_FILE.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the auth server
//	-t int      request timeout (seconds)
//	-f string   file the access token is stored in
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "request_timeout": "10s",
//	  "token_file": "/home/me/.config/userauth/token"
//	}
//
// Arguments left after the flags (the command and its operands) are returned
// from LoadConfig unchanged.
package config
