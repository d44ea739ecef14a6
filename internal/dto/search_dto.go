package dto

import (
	"study-assistant-be/pkg/catalog/archive"
	"study-assistant-be/pkg/catalog/openlibrary"
)

// SearchSourceHeader tells clients whether research results are real or
// placeholder records.
const SearchSourceHeader = "X-Search-Source"

type BooksResponse struct {
	Books []openlibrary.Book `json:"books"`
}

type PapersResponse struct {
	Papers []archive.Paper `json:"papers"`
}
