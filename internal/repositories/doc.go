// Package repositories implements file-backed persistence for per-user token records.
//
// Each Spotify user's [models.TokenRecord] is stored as one JSON document on
// disk, named deterministically from the sanitized user id. Writes go through
// a temp-file-then-rename sequence so a concurrent reader never observes a
// partially written record. There is no locking: each user id is written
// almost exclusively by that user's own request flow, so last-write-wins is
// accepted.
//
// Key Implementations:
//   - [TokenStore] : create/read/delete of one token record per user id
//   - [SanitizeID] : neutralizes path separators in upstream-controlled ids
package repositories
