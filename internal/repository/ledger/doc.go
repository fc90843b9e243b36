// Package ledger implements persistence for the lap ledger.
//
// The FileRepository stores and loads lap records as JSON on disk and exposes
// a Repository interface that the session service depends on. Persistence is
// best-effort by contract: callers treat failures as advisory.
package ledger
