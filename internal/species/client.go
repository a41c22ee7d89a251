// Package species looks up bird species in the eBird taxonomy.
package species

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/birdling/internal/metrics"
)

var ErrSpeciesNotFound = errors.New("species not found")

// Taxon is one entry of the eBird taxonomy.
type Taxon struct {
	ScientificName string  `json:"sciName"`
	CommonName     string  `json:"comName"`
	SpeciesCode    string  `json:"speciesCode"`
	Category       string  `json:"category"`
	TaxonOrder     float64 `json:"taxonOrder"`
	Order          string  `json:"order"`
	FamilyCode     string  `json:"familyCode"`
	FamilyComName  string  `json:"familyComName"`
}

// Species is what the learner's catalog needs to know about a bird.
type Species struct {
	ScientificName string
	EnglishName    string
	LocalName      string
	SpeciesCode    string
	Category       string
	Order          string
	Family         string
}

type Client struct {
	httpClient       *resty.Client
	locale           string
	maxRetryAttempts uint
	cache            *FileCache
	metrics          *metrics.Manager
}

type Option func(*Client)

// WithCache keeps taxonomy responses in directory.
func WithCache(directory string) Option {
	return func(c *Client) {
		if directory != "" {
			c.cache = NewFileCache(directory)
		}
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for the eBird API at baseURL. locale selects the
// language of LocalName; an empty or "en" locale sets LocalName to the English name.
func NewClient(baseURL, apiToken, locale string, retryAttempts uint, opts ...Option) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetHeader("Accept", "application/json")
	if apiToken != "" {
		client.SetHeader("X-eBirdApiToken", apiToken)
	}

	c := &Client{
		httpClient:       client,
		locale:           locale,
		maxRetryAttempts: retryAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Lookup finds the species with exactly this scientific name (case-insensitive).
// The localized name is best effort: when it cannot be fetched LocalName stays empty.
func (client *Client) Lookup(ctx context.Context, scientificName string) (Species, error) {
	scientificName = strings.TrimSpace(scientificName)
	if scientificName == "" {
		return Species{}, ErrSpeciesNotFound
	}

	taxon, err := client.findTaxon(ctx, scientificName, "")
	if err != nil {
		return Species{}, err
	}
	result := Species{
		ScientificName: taxon.ScientificName,
		EnglishName:    taxon.CommonName,
		SpeciesCode:    taxon.SpeciesCode,
		Category:       taxon.Category,
		Order:          taxon.Order,
		Family:         taxon.FamilyComName,
	}

	if client.locale != "" && client.locale != "en" {
		localized, err := client.findTaxon(ctx, scientificName, client.locale)
		if err != nil {
			slog.Default().Warn("failed to look up the localized species name",
				slog.String("scientificName", scientificName),
				slog.String("locale", client.locale),
				slog.Any("error", err),
			)
		} else {
			result.LocalName = localized.CommonName
		}
	} else {
		result.LocalName = taxon.CommonName
	}
	return result, nil
}

func (client *Client) findTaxon(ctx context.Context, scientificName, locale string) (Taxon, error) {
	body, err := client.taxonomy(ctx, scientificName, locale)
	if err != nil {
		return Taxon{}, err
	}

	var taxa []Taxon
	if err := json.Unmarshal(body, &taxa); err != nil {
		return Taxon{}, fmt.Errorf("json.Unmarshal(taxonomy) > %w", err)
	}
	for _, taxon := range taxa {
		if strings.EqualFold(taxon.ScientificName, scientificName) {
			return taxon, nil
		}
	}
	return Taxon{}, fmt.Errorf("%w: %s", ErrSpeciesNotFound, scientificName)
}

func (client *Client) taxonomy(ctx context.Context, scientificName, locale string) ([]byte, error) {
	fetch := func() ([]byte, error) {
		return client.fetchTaxonomy(ctx, scientificName, locale)
	}
	if client.cache == nil {
		body, err := fetch()
		client.recordLookup("api", err)
		return body, err
	}

	key := scientificName
	if locale != "" {
		key = locale + "_" + scientificName
	}
	body, cached, err := client.cache.cache(key, fetch)
	if err != nil && body == nil {
		client.recordLookup("api", err)
		return nil, fmt.Errorf("cache.cache() > %w", err)
	}
	if err != nil {
		slog.Default().Warn("failed to write the species cache", slog.String("key", key), slog.Any("error", err))
	}
	if cached {
		client.recordLookup("cache", nil)
	} else {
		client.recordLookup("api", nil)
	}
	return body, nil
}

func (client *Client) recordLookup(source string, err error) {
	if err != nil {
		source = "error"
	}
	client.metrics.RecordSpeciesLookup(source)
}

func (client *Client) fetchTaxonomy(ctx context.Context, scientificName, locale string) ([]byte, error) {
	var body []byte
	if err := retry.Do(
		func() error {
			request := client.httpClient.R().
				SetContext(ctx).
				SetQueryParam("fmt", "json").
				SetQueryParam("q", scientificName)
			if locale != "" {
				request.SetQueryParam("locale", locale)
			}
			response, err := request.Get("/ref/taxonomy/ebird")
			if err != nil {
				return fmt.Errorf("httpClient.Get() > %w", err)
			}
			if response.IsError() {
				err := fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
				if !isRetryableStatus(response.StatusCode()) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = []byte(response.String())
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return body, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
