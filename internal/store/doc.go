// Package store defines the persistence interfaces for board posts and
// memos, the error kinds every implementation reports, and the transaction
// helper used to scope writes. Concrete SQL implementations live in
// internal/platform/sqldb.
package store
