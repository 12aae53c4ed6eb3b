package curse_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/evergales/tinkaros/internals/curse"
)

func TestGetFiles(t *testing.T) {
	var gotKey string
	var gotIDs []int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/v1/mods/files" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		body := struct {
			FileIDs []int `json:"fileIds"`
		}{}
		json.NewDecoder(r.Body).Decode(&body)
		gotIDs = body.FileIDs
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":4626108,"modId":328085,"fileName":"create-1.20.1.jar","downloadUrl":"https://edge.forgecdn.net/create.jar","isAvailable":true,"fileDate":"2023-07-01T10:00:00Z","gameVersions":["1.20.1","Forge"]}]}`))
	}))
	defer srv.Close()

	client := curse.NewWithBaseURL(srv.Client(), "secret", srv.URL)
	files, err := client.GetFiles(context.Background(), []int{4626108})
	if err != nil {
		t.Fatal(err)
	}

	if gotKey != "secret" {
		t.Errorf("expected api key header, got %q", gotKey)
	}
	if len(gotIDs) != 1 || gotIDs[0] != 4626108 {
		t.Errorf("unexpected file ids %v", gotIDs)
	}
	if len(files) != 1 || files[0].FileName != "create-1.20.1.jar" {
		t.Fatalf("unexpected files %+v", files)
	}
	if !files[0].HasGameVersion("Forge") {
		t.Error("expected Forge tag")
	}
}

func TestGetFiles_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	client := curse.NewWithBaseURL(srv.Client(), "secret", srv.URL)
	files, err := client.GetFiles(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}

func TestGetModFiles_Pagination(t *testing.T) {
	const total = 120
	requests := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/v1/mods/238222/files" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("gameVersion"); got != "1.20.1" {
			t.Errorf("unexpected gameVersion %q", got)
		}
		index, _ := strconv.Atoi(r.URL.Query().Get("index"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		data := []curse.File{}
		for i := index; i < total && i < index+pageSize; i++ {
			data = append(data, curse.File{ID: i})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": data,
			"pagination": curse.Pagination{
				Index:       index,
				PageSize:    pageSize,
				ResultCount: len(data),
				TotalCount:  total,
			},
		})
	}))
	defer srv.Close()

	client := curse.NewWithBaseURL(srv.Client(), "secret", srv.URL)
	files, err := client.GetModFiles(context.Background(), 238222, "1.20.1")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != total {
		t.Fatalf("expected %d files, got %d", total, len(files))
	}
	if requests != 3 {
		t.Fatalf("expected 3 requests, got %d", requests)
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{404, curse.ErrResourceNotFound},
		{403, curse.ErrUnauthorized},
		{429, curse.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := curse.NewWithBaseURL(srv.Client(), "secret", srv.URL)
			_, err := client.GetModFiles(context.Background(), 1, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
