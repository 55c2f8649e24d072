package guards

import "github.com/janisto/guardhire/internal/platform/timeutil"

// GuardsListData is the response body for the guard list endpoints.
type GuardsListData struct {
	Guards  []Guard `json:"guards"  doc:"Cached guards"`
	Loading bool    `json:"loading" doc:"Whether a fetch is still in flight"   example:"false"`
	Count   int     `json:"count"   doc:"Number of guards returned"            example:"2"`
	Total   int     `json:"total"   doc:"Number of guards matching the filter" example:"2"`
	// FetchedAt is null until the first fetch completes.
	FetchedAt timeutil.Time `json:"fetchedAt" doc:"When the cached list was last stored" example:"2026-03-01T09:00:00.000Z"`
}

// GuardsListPageOutput is the paginated GET /guards response with its Link header.
type GuardsListPageOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body GuardsListData
}

// GuardsListOutput for POST /guards/refetch
type GuardsListOutput struct {
	Body GuardsListData
}
