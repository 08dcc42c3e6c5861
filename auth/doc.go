// Package auth performs the client-credential exchange against the API and
// caches the resulting short-lived token, renewing it once its embedded
// expiry passes.
package auth
