package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kraklabs/bipass-pathfinder/internal/errors"
	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

// HTTPFetcher talks to the wikidata-like entity API and the word-embedding
// API over plain net/http, per the request/response shapes in spec §6. No
// ecosystem HTTP client is warranted here — the contract is a handful of
// GET requests with JSON bodies, squarely inside net/http's comfort zone.
type HTTPFetcher struct {
	wikidataAPI string
	wembedAPI   string
	client      *http.Client
	retryConfig errors.RetryConfig
}

// NewHTTPFetcher returns a Fetcher backed by the two configured base URLs.
func NewHTTPFetcher(wikidataAPI, wembedAPI string) *HTTPFetcher {
	return &HTTPFetcher{
		wikidataAPI: wikidataAPI,
		wembedAPI:   wembedAPI,
		client:      &http.Client{Timeout: 30 * time.Second},
		retryConfig: errors.DefaultRetryConfig(),
	}
}

type adjacentEntitiesResponse struct {
	AdjacentEntities map[string][]string `json:"adjacent_entities"`
	QLabels          map[string]string   `json:"q_labels"`
	QDescriptions    map[string]string   `json:"q_descriptions"`
	PLabels          map[string]string   `json:"p_labels"`
	PDescriptions    map[string]string   `json:"p_descriptions"`
}

// FetchAdjacentBundle implements Fetcher.
func (f *HTTPFetcher) FetchAdjacentBundle(entity graph.EID, depth int) (*AdjacentBundle, error) {
	u := fmt.Sprintf("%s/adjacent_entities?entity=%s&depth=%d",
		f.wikidataAPI, url.QueryEscape(string(entity)), depth)

	var body adjacentEntitiesResponse
	if err := f.getJSON(u, &body); err != nil {
		return nil, err
	}

	bundle := &AdjacentBundle{
		QLabels:          make(map[graph.EID]string, len(body.QLabels)),
		QDescriptions:    make(map[graph.EID]string, len(body.QDescriptions)),
		PLabels:          make(map[graph.PID]string, len(body.PLabels)),
		PDescriptions:    make(map[graph.PID]string, len(body.PDescriptions)),
		AdjacentEntities: make(map[graph.EID][]string, len(body.AdjacentEntities)),
	}
	for k, v := range body.QLabels {
		bundle.QLabels[graph.EID(k)] = v
	}
	for k, v := range body.QDescriptions {
		bundle.QDescriptions[graph.EID(k)] = v
	}
	for k, v := range body.PLabels {
		bundle.PLabels[graph.PID(k)] = v
	}
	for k, v := range body.PDescriptions {
		bundle.PDescriptions[graph.PID(k)] = v
	}
	for k, v := range body.AdjacentEntities {
		bundle.AdjacentEntities[graph.EID(k)] = v
	}

	return bundle, nil
}

type labelDescriptionResponse struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// FetchLabelDescription implements Fetcher.
func (f *HTTPFetcher) FetchLabelDescription(entity graph.EID) (string, string, error) {
	u := fmt.Sprintf("%s/label_description?entity=%s", f.wikidataAPI, url.QueryEscape(string(entity)))

	var body labelDescriptionResponse
	if err := f.getJSON(u, &body); err != nil {
		if errors.GetCode(err) == errors.ErrCodeFetchParse {
			return "", "", nil
		}
		return "", "", err
	}

	return body.Label, body.Description, nil
}

type distanceResponse struct {
	Distance float64 `json:"distance"`
}

// FetchSemanticDistance implements Fetcher.
func (f *HTTPFetcher) FetchSemanticDistance(stringA, stringB string) (float64, error) {
	u := fmt.Sprintf("%s?string_a=%s&string_b=%s",
		f.wembedAPI, url.QueryEscape(stringA), url.QueryEscape(stringB))

	var body distanceResponse
	if err := f.getJSON(u, &body); err != nil {
		return 0, err
	}

	return body.Distance, nil
}

// FetchAveragePropFrequency implements Fetcher. Not called by the cost
// function yet (spec §9), but wired so the hook is real.
func (f *HTTPFetcher) FetchAveragePropFrequency(props []graph.PID) (float64, error) {
	if len(props) == 0 {
		return 0, nil
	}

	u := f.wikidataAPI + "/prop_frequency?props="
	for i, p := range props {
		if i > 0 {
			u += ","
		}
		u += url.QueryEscape(string(p))
	}

	var body struct {
		AverageFrequency float64 `json:"average_frequency"`
	}
	if err := f.getJSON(u, &body); err != nil {
		return 0, err
	}

	return body.AverageFrequency, nil
}

// getJSON performs the GET and decode, retrying transient NetworkErrors
// with the package's exponential backoff per spec §7's "built-in retries"
// language. Only the request/connect step is retried — a non-200 status or
// a decode failure is treated as a final answer from a reachable server,
// not a transient condition.
func (f *HTTPFetcher) getJSON(u string, out any) error {
	var resp *http.Response

	fetchErr := errors.Retry(context.Background(), f.retryConfig, func() error {
		r, err := f.client.Get(u)
		if err != nil {
			return errors.NetworkError("request to "+u+" failed", err)
		}
		resp = r
		return nil
	})
	if fetchErr != nil {
		return errors.NetworkError("request to "+u+" failed after retries", fetchErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.ErrCodeFetchUnavailable,
			"unexpected status "+strconv.Itoa(resp.StatusCode)+" from "+u, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.New(errors.ErrCodeFetchParse, "cannot parse response from "+u, err)
	}

	return nil
}
