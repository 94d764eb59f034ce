package models

import "encoding/json"

// Collection names of the document store.
const (
	CollectionVendors     = "vendors"
	CollectionExpenses    = "expenses"
	CollectionAppSettings = "appSettings"
	CollectionPublicData  = "public_data"
)

// AuditFields are the timestamp columns of a stored document, in Unix milliseconds.
type AuditFields struct {
	CreatedAt int64 `db:"created_at"`
	UpdatedAt int64 `db:"updated_at"`
}

// Document is a row of the documents table: a JSON body keyed by collection and id.
type Document struct {
	Collection    string          `db:"collection"`
	ID            string          `db:"id"`
	UserID        string          `db:"user_id"`
	Body          json.RawMessage `db:"body"`
	SchemaVersion int             `db:"schema_version"`
	Revision      int64           `db:"revision"`
	AuditFields
}
