package curse

import (
	"context"
	"strconv"
	"time"
)

// PageSize is the page size used when listing the files of a mod
const PageSize = 50

// File is a released file of a CurseForge mod
type File struct {
	ID          int       `json:"id"`
	ModID       int       `json:"modId"`
	DisplayName string    `json:"displayName"`
	FileName    string    `json:"fileName"`
	DownloadURL string    `json:"downloadUrl"`
	FileDate    time.Time `json:"fileDate"`
	FileLength  int64     `json:"fileLength"`
	IsAvailable bool      `json:"isAvailable"`
	// GameVersions contains game versions and loader names (eg. "1.20.1", "Forge")
	GameVersions []string `json:"gameVersions"`
}

// HasGameVersion returns true if `v` is one of the files game version tags
func (f *File) HasGameVersion(v string) bool {
	for _, tag := range f.GameVersions {
		if tag == v {
			return true
		}
	}
	return false
}

// Pagination is returned by list endpoints
type Pagination struct {
	Index       int `json:"index"`
	PageSize    int `json:"pageSize"`
	ResultCount int `json:"resultCount"`
	TotalCount  int `json:"totalCount"`
}

type filesResponse struct {
	Data       []File     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type getFilesRequest struct {
	FileIDs []int `json:"fileIds"`
}

// GetFiles returns the files with the given ids in one request.
// An empty list returns an empty slice without making a request
func (c *Client) GetFiles(ctx context.Context, fileIDs []int) ([]File, error) {
	if len(fileIDs) == 0 {
		return []File{}, nil
	}

	result := filesResponse{}
	res, err := c.r.R().
		SetContext(ctx).
		SetBody(getFilesRequest{fileIDs}).
		SetResult(&result).
		Post("/v1/mods/files")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(res); err != nil {
		return nil, err
	}

	return result.Data, nil
}

// GetModFiles returns all files of the mod `modID`. If gameVersion is not
// empty only files for that game version are requested. All pages are fetched
func (c *Client) GetModFiles(ctx context.Context, modID int, gameVersion string) ([]File, error) {
	files := []File{}
	index := 0

	for {
		page := filesResponse{}
		req := c.r.R().
			SetContext(ctx).
			SetPathParam("modId", strconv.Itoa(modID)).
			SetQueryParam("index", strconv.Itoa(index)).
			SetQueryParam("pageSize", strconv.Itoa(PageSize)).
			SetResult(&page)
		if gameVersion != "" {
			req.SetQueryParam("gameVersion", gameVersion)
		}

		res, err := req.Get("/v1/mods/{modId}/files")
		if err != nil {
			return nil, err
		}
		if err := checkResponse(res); err != nil {
			return nil, err
		}

		files = append(files, page.Data...)

		p := page.Pagination
		if p.ResultCount == 0 || p.Index+p.ResultCount >= p.TotalCount {
			return files, nil
		}
		index = p.Index + p.ResultCount
	}
}
