package meal

import "errors"

// Catalog load errors. A single malformed record is never an error; it is
// dropped. These report failures of the whole file.
var (
	ErrCatalogRead      = errors.New("cannot read catalog")
	ErrCatalogParse     = errors.New("catalog parse error")
	ErrCatalogMalformed = errors.New("malformed catalog: expected a JSON array at top level")
)
