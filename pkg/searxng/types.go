package searxng

import "github.com/rhuss/mcp-searxng/pkg/api"

// Placeholders substituted when a result lacks the corresponding element.
const (
	NoTitle       = "No Title"
	NoDescription = "No Description"
)

// Query is a single search request.
type Query struct {
	Text       string
	MaxResults int
}

// Validate reports caller errors. It never touches the network. The query
// text is passed through as given, blank or not.
func (q Query) Validate() error {
	if q.MaxResults <= 0 {
		return api.NewInvalidParamsError("max_results must be greater than 0.")
	}
	return nil
}

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}
