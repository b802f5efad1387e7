package oyez

import (
	"context"
	"fmt"

	"supremes/pkg/cache"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.oyez.org"

// Client is the typed fetch surface over the case API. All network access
// goes through the configured Fetcher, so callers decide whether documents
// come from the cache, the network, or a test double.
type Client struct {
	fetcher cache.Fetcher
	baseURL string
}

// NewClientParams contains configuration for creating a Client.
type NewClientParams struct {
	Fetcher cache.Fetcher
	BaseURL string
}

// NewClient creates a client over the given fetcher. An empty BaseURL
// defaults to the production API.
func NewClient(params NewClientParams) *Client {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		fetcher: params.Fetcher,
		baseURL: baseURL,
	}
}

// CaseByDocket fetches a single case addressed by term and docket number
// and expands it into its full entity graph, including one further fetch
// per oral-argument transcript.
func (c *Client) CaseByDocket(ctx context.Context, term string, docket string) (*Case, error) {
	url := fmt.Sprintf("%s/cases/%s/%s", c.baseURL, term, docket)
	doc, err := c.fetcher.FetchJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	return c.buildCase(ctx, doc)
}

// CaseSummary is one entry of a term listing: enough to address the full
// case record, without the expense of expanding it.
type CaseSummary struct {
	ID           int64
	Term         string
	DocketNumber string
	Name         string
	Href         string
}

// CasesForTerm fetches the listing of all cases argued in a term. Callers
// wanting full graphs follow up with CaseByDocket per summary.
func (c *Client) CasesForTerm(ctx context.Context, term string) ([]CaseSummary, error) {
	url := fmt.Sprintf("%s/cases?per_page=0&filter=term:%s", c.baseURL, term)
	doc, err := c.fetcher.FetchJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	items, ok := doc.Items()
	if !ok {
		return nil, fmt.Errorf("term listing: expected an array, got %T", doc.Value())
	}

	summaries := make([]CaseSummary, 0, len(items))
	for _, item := range items {
		id, err := item.Int("case summary", "ID")
		if err != nil {
			return nil, err
		}
		name, err := item.String("case summary", "name")
		if err != nil {
			return nil, err
		}
		href, err := item.String("case summary", "href")
		if err != nil {
			return nil, err
		}
		summaryTerm, _ := item.OptString("term")
		docket, _ := item.OptString("docket_number")

		summaries = append(summaries, CaseSummary{
			ID:           id,
			Term:         summaryTerm,
			DocketNumber: docket,
			Name:         name,
			Href:         href,
		})
	}
	return summaries, nil
}

// TranscriptByID fetches and builds one oral-argument transcript.
func (c *Client) TranscriptByID(ctx context.Context, id int64) (Transcript, error) {
	doc, err := c.fetcher.FetchJSON(ctx, transcriptURL(c.baseURL, id))
	if err != nil {
		return Transcript{}, err
	}
	return buildTranscript(doc)
}

func transcriptURL(baseURL string, id int64) string {
	return fmt.Sprintf("%s/case_media/oral_argument_audio/%d", baseURL, id)
}
