package modrinth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modsync/pkg/errors"
	"modsync/pkg/types"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, New(WithBaseURL(server.URL))
}

func TestFetchCollection(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/collection/HO2OnfaY":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id":       "HO2OnfaY",
				"name":     "My Pack",
				"projects": []string{"AANobbMI", "fresh", "shader"},
			})
		case "/v2/projects":
			var ids []string
			require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("ids")), &ids))
			assert.Equal(t, []string{"AANobbMI", "fresh", "shader"}, ids)
			_ = json.NewEncoder(w).Encode([]map[string]string{
				{"id": "AANobbMI", "title": "Sodium", "project_type": "mod"},
				{"id": "fresh", "title": "Fresh Animations", "project_type": "resourcepack"},
				{"id": "shader", "title": "Some Shader", "project_type": "shader"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	artifacts, err := client.FetchCollection(context.Background(), "HO2OnfaY")
	require.NoError(t, err)

	// Unsupported project types are dropped.
	require.Len(t, artifacts, 2)
	assert.Equal(t, types.Artifact{ID: "AANobbMI", Name: "Sodium", Kind: types.KindMod}, artifacts[0])
	assert.Equal(t, types.Artifact{ID: "fresh", Name: "Fresh Animations", Kind: types.KindResourcePack}, artifacts[1])
}

func TestFetchCollectionNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchCollection(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCollectionFetch))
}

func TestFetchVersionsPreservesOrder(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/project/AANobbMI/version", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":            "new",
				"game_versions": []string{"1.21.5"},
				"loaders":       []string{"fabric"},
				"files": []map[string]interface{}{
					{"url": "https://cdn.example/a.jar", "filename": "a.jar", "primary": true},
				},
			},
			{
				"id":            "old",
				"game_versions": []string{"1.21.4"},
				"loaders":       []string{"fabric"},
				"files": []map[string]interface{}{
					{"url": "https://cdn.example/b.jar", "filename": "b.jar", "primary": false},
				},
			},
		})
	})

	versions, err := client.FetchVersions(context.Background(), "AANobbMI")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "new", versions[0].ID)
	assert.Equal(t, "old", versions[1].ID)

	file, ok := versions[0].PrimaryFile()
	require.True(t, ok)
	assert.Equal(t, "a.jar", file.Filename)
}

func TestFetchVersionsMalformedPayload(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.FetchVersions(context.Background(), "AANobbMI")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVersionsFetch))
}

func TestLatestGameVersion(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/tag/game_version", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"version": "1.21.6-pre1", "version_type": "snapshot"},
			{"version": "1.21.5", "version_type": "release"},
			{"version": "1.21.4", "version_type": "release"},
		})
	})

	latest, err := client.LatestGameVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.21.5", latest)
}

func TestLatestGameVersionNoRelease(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"version": "25w20a", "version_type": "snapshot"},
		})
	})

	_, err := client.LatestGameVersion(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAPIResponse))
}

func TestDownload(t *testing.T) {
	server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cdn/sodium.jar" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("jar-bytes"))
	})

	data, err := client.Download(context.Background(), server.URL+"/cdn/sodium.jar")
	require.NoError(t, err)
	assert.Equal(t, []byte("jar-bytes"), data)

	_, err = client.Download(context.Background(), server.URL+"/cdn/missing.jar")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDownload))
}
