// Package modrinth is the gateway to the remote Modrinth API. The sync
// engine only sees the types.APIClient interface; everything here is thin
// HTTP plumbing and JSON decoding.
package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"modsync/internal/version"
	"modsync/pkg/errors"
	"modsync/pkg/logging"
	"modsync/pkg/types"
)

// DefaultBaseURL is the production Modrinth API endpoint.
const DefaultBaseURL = "https://api.modrinth.com"

// Client implements types.APIClient over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternate API address.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// collectionResponse is the v3 collection payload (membership only).
type collectionResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Projects []string `json:"projects"`
}

// projectResponse is the subset of the v2 project payload we consume.
type projectResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ProjectType string `json:"project_type"`
}

// versionResponse is the subset of the v2 version payload we consume.
type versionResponse struct {
	ID           string         `json:"id"`
	GameVersions []string       `json:"game_versions"`
	Loaders      []string       `json:"loaders"`
	Files        []fileResponse `json:"files"`
}

type fileResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Primary  bool   `json:"primary"`
}

// gameVersionTag is one entry of the v2 game_version tag listing.
type gameVersionTag struct {
	Version     string `json:"version"`
	VersionType string `json:"version_type"`
}

// FetchCollection resolves a collection to its member artifacts. The v3
// collection endpoint only returns project IDs; display names and kinds
// come from a single bulk project lookup.
func (c *Client) FetchCollection(ctx context.Context, collectionID string) ([]types.Artifact, error) {
	logger := logging.GetLogger("modrinth")

	var collection collectionResponse
	if err := c.getJSON(ctx, "/v3/collection/"+url.PathEscape(collectionID), &collection); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCollectionFetch,
			"failed to fetch collection %s", collectionID)
	}
	if len(collection.Projects) == 0 {
		return nil, nil
	}

	ids, err := json.Marshal(collection.Projects)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode project IDs")
	}

	var projects []projectResponse
	path := "/v2/projects?ids=" + url.QueryEscape(string(ids))
	if err := c.getJSON(ctx, path, &projects); err != nil {
		return nil, errors.Wrapf(err, errors.ErrProjectFetch,
			"failed to fetch projects for collection %s", collectionID)
	}

	artifacts := make([]types.Artifact, 0, len(projects))
	for _, p := range projects {
		var kind types.Kind
		switch p.ProjectType {
		case "mod":
			kind = types.KindMod
		case "resourcepack":
			kind = types.KindResourcePack
		default:
			logger.Debug().
				Str("project", p.ID).
				Str("type", p.ProjectType).
				Msg("Skipping unsupported project type")
			continue
		}
		artifacts = append(artifacts, types.Artifact{
			ID:   p.ID,
			Name: p.Title,
			Kind: kind,
		})
	}

	logger.Debug().
		Str("collection", collectionID).
		Str("name", collection.Name).
		Int("artifacts", len(artifacts)).
		Msg("Fetched collection")
	return artifacts, nil
}

// FetchVersions lists an artifact's published versions, preserving the
// API's newest-first ordering.
func (c *Client) FetchVersions(ctx context.Context, artifactID string) ([]types.ArtifactVersion, error) {
	var raw []versionResponse
	path := "/v2/project/" + url.PathEscape(artifactID) + "/version"
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrVersionsFetch,
			"failed to fetch versions for %s", artifactID)
	}

	versions := make([]types.ArtifactVersion, 0, len(raw))
	for _, v := range raw {
		files := make([]types.VersionFile, 0, len(v.Files))
		for _, f := range v.Files {
			files = append(files, types.VersionFile{
				URL:      f.URL,
				Filename: f.Filename,
				Primary:  f.Primary,
			})
		}
		versions = append(versions, types.ArtifactVersion{
			ID:           v.ID,
			GameVersions: v.GameVersions,
			Loaders:      v.Loaders,
			Files:        files,
		})
	}
	return versions, nil
}

// LatestGameVersion reports the newest released platform version. The tag
// listing is newest-first; the first release-type entry wins.
func (c *Client) LatestGameVersion(ctx context.Context) (string, error) {
	var tags []gameVersionTag
	if err := c.getJSON(ctx, "/v2/tag/game_version", &tags); err != nil {
		return "", errors.Wrap(err, errors.ErrTagFetch, "failed to fetch game version tags")
	}
	for _, tag := range tags {
		if tag.VersionType == "release" {
			return tag.Version, nil
		}
	}
	return "", errors.New(errors.ErrAPIResponse, "no release game version in tag listing")
}

// Download retrieves the raw bytes behind a version file URL. Download
// URLs are absolute (CDN-hosted), so the base URL is not applied.
func (c *Client) Download(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "invalid download URL %s", fileURL)
	}
	req.Header.Set("User-Agent", userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "failed to download %s", fileURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrDownload,
			"unexpected status %d downloading %s", resp.StatusCode, fileURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDownload, "failed to read body of %s", fileURL)
	}
	return data, nil
}

// getJSON issues a GET against the API base URL and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrAPIResponse, "invalid request path %s", path)
	}
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrAPIResponse,
			"unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, errors.ErrAPIResponse, "malformed response from %s", path)
	}
	return nil
}

func userAgent() string {
	return fmt.Sprintf("modsync/%s", version.Version)
}
