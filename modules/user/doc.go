// Package user is the /api/user feature router. It serves the profile of
// the signed-in user at /me and any profile by id at /{id}.
package user
