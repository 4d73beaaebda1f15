package app

// CollectionInfo describes one collection for navigation and listings.
type CollectionInfo struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Singular string   `json:"singular"`
	Columns  []string `json:"columns"`
}

// ListResult is returned by CollectionService.List.
type ListResult struct {
	Records any `json:"records"`
	Count   int `json:"count"`
	Total   int `json:"total"`
}

// MutationResult is returned by Create, Update and Delete.
type MutationResult struct {
	Record  any    `json:"record,omitempty"`
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// TableResult is returned by CollectionService.Table.
type TableResult struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// ResetResult is returned by Reset and ResetAll.
type ResetResult struct {
	Collection string `json:"collection"`
	Records    int    `json:"records"`
}
