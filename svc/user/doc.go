// Package user owns user accounts: registration with bcrypt password
// hashes, credential checks, and lookup by id for the auth deserializer
// (Service implements auth.Resolver).
//
// Repositories exist for MongoDB and for process memory.
package user
