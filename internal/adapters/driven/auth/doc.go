// Package auth provides token providers for the 7shifts API.
//
// The access token is looked up in the ACCESS_TOKEN_7SHIFTS environment
// variable first and the api.token configuration key second.
package auth
