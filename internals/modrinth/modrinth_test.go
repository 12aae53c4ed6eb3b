package modrinth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evergales/tinkaros/internals/modrinth"
)

const sha1Hash = "b9ab9ab267f8cdff525f9a8edb26435d3e2455f6"

func newTestClient(t *testing.T, handler http.HandlerFunc) *modrinth.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := modrinth.NewWithBaseURL(srv.Client(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestVersionsFromHashes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/v2/version_files" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body := map[string]interface{}{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["algorithm"] != "sha1" {
			t.Errorf("expected sha1 algorithm, got %v", body["algorithm"])
		}
		w.Write([]byte(`{"` + sha1Hash + `":{"id":"4XRtXhtL","project_id":"P7dR8mSH","files":[
			{"filename":"extra.jar","url":"https://cdn/extra.jar","primary":false},
			{"filename":"fabric-api.jar","url":"https://cdn/fabric-api.jar","primary":true}
		]}}`))
	})

	versions, err := client.VersionsFromHashes(context.Background(), []string{sha1Hash})
	if err != nil {
		t.Fatal(err)
	}
	version, ok := versions[sha1Hash]
	if !ok {
		t.Fatalf("expected version for hash, got %v", versions)
	}
	if file := version.RelevantFile(); file == nil || file.Filename != "fabric-api.jar" {
		t.Fatalf("expected primary file, got %+v", file)
	}
}

func TestLatestVersionsFromHashes(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/version_files/update" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	})

	_, err := client.LatestVersionsFromHashes(
		context.Background(),
		[]string{strings.ToUpper(sha1Hash)},
		modrinth.UpdateQuery{Loaders: []string{"forge"}, GameVersions: []string{"1.20.1"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	loaders, _ := got["loaders"].([]interface{})
	if len(loaders) != 1 || loaders[0] != "forge" {
		t.Errorf("unexpected loaders %v", got["loaders"])
	}
	hashes, _ := got["hashes"].([]interface{})
	if len(hashes) != 1 || hashes[0] != sha1Hash {
		t.Errorf("expected lowercased hash, got %v", got["hashes"])
	}
}

func TestEmptyInputMakesNoRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	versions, err := client.VersionsFromHashes(context.Background(), nil)
	if err != nil || len(versions) != 0 {
		t.Fatalf("expected empty result, got %v %v", versions, err)
	}
	versions, err = client.LatestVersionsFromHashes(context.Background(), []string{}, modrinth.UpdateQuery{})
	if err != nil || len(versions) != 0 {
		t.Fatalf("expected empty result, got %v %v", versions, err)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		hash   string
		status int
		want   error
	}{
		{"invalid hash", "abc", 200, modrinth.ErrInvalidFileHash},
		{"not found", sha1Hash, 404, modrinth.ErrResourceNotFound},
		{"rate limited", sha1Hash, 429, modrinth.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.VersionsFromHashes(context.Background(), []string{tt.hash})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRelevantFile(t *testing.T) {
	single := modrinth.Version{Files: []modrinth.File{{Filename: "only.jar"}}}
	if f := single.RelevantFile(); f == nil || f.Filename != "only.jar" {
		t.Errorf("expected the only file, got %+v", f)
	}

	none := modrinth.Version{Files: []modrinth.File{{Filename: "a.jar"}, {Filename: "b.jar"}}}
	if f := none.RelevantFile(); f != nil {
		t.Errorf("expected no file, got %+v", f)
	}
}
