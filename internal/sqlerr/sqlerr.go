// Package sqlerr classifies errors coming out of the storage layer.
//
// Gateway failures are wrapped in *StorageError so the operation that failed
// travels with the cause. Postgres driver errors are decoded into an *Error
// carrying a portable Code, which the global error handler logs next to the
// sanitized response it sends.
package sqlerr
