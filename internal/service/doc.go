// Package service contains the application's business logic: the task
// query/filter/statistics engine, authentication orchestration, and user
// management. Services depend on store interfaces and return either domain
// values with wrapped sentinel errors or, for auth operations, structured
// result objects that never expose internal errors to callers.
package service
