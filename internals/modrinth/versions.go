package modrinth

import (
	"context"
	"strings"
)

// UpdateQuery filters the versions returned by `LatestVersionsFromHashes`
type UpdateQuery struct {
	Loaders      []string `json:"loaders"`
	GameVersions []string `json:"game_versions"`
}

type hashesRequest struct {
	Hashes    []string `json:"hashes"`
	Algorithm string   `json:"algorithm"`
}

type updateRequest struct {
	hashesRequest
	UpdateQuery
}

// algorithm returns the hash algorithm name modrinth expects for the given hash
func algorithm(hash string) (string, error) {
	switch len(hash) {
	case 40:
		return "sha1", nil
	case 128:
		return "sha512", nil
	default:
		return "", ErrInvalidFileHash
	}
}

// groupByAlgorithm splits hashes by their algorithm. modrinth only accepts one
// algorithm per request
func groupByAlgorithm(hashes []string) (map[string][]string, error) {
	groups := make(map[string][]string)
	for _, hash := range hashes {
		hash = strings.ToLower(hash)
		algo, err := algorithm(hash)
		if err != nil {
			return nil, err
		}
		groups[algo] = append(groups[algo], hash)
	}
	return groups, nil
}

// VersionsFromHashes returns the versions containing the files with the given hashes.
// The result is keyed by hash. Hashes can be sha1 or sha512 hashes.
// An empty list returns an empty map without making a request
func (c *Client) VersionsFromHashes(ctx context.Context, hashes []string) (map[string]Version, error) {
	result := make(map[string]Version, len(hashes))
	if len(hashes) == 0 {
		return result, nil
	}

	groups, err := groupByAlgorithm(hashes)
	if err != nil {
		return nil, err
	}

	for algo, group := range groups {
		res, err := c.postJSON(ctx, c.url("v2/version_files").String(), hashesRequest{group, algo})
		if err != nil {
			return nil, err
		}

		var versions map[string]Version
		if err := decode(res, &versions); err != nil {
			return nil, err
		}
		for hash, version := range versions {
			result[hash] = version
		}
	}

	return result, nil
}

// LatestVersionsFromHashes returns the latest version of the project of each file hash
// that matches the given loaders and game versions. The result is keyed by the given hash.
// An empty list returns an empty map without making a request
func (c *Client) LatestVersionsFromHashes(ctx context.Context, hashes []string, query UpdateQuery) (map[string]Version, error) {
	result := make(map[string]Version, len(hashes))
	if len(hashes) == 0 {
		return result, nil
	}

	groups, err := groupByAlgorithm(hashes)
	if err != nil {
		return nil, err
	}

	for algo, group := range groups {
		body := updateRequest{hashesRequest{group, algo}, query}
		res, err := c.postJSON(ctx, c.url("v2/version_files/update").String(), body)
		if err != nil {
			return nil, err
		}

		var versions map[string]Version
		if err := decode(res, &versions); err != nil {
			return nil, err
		}
		for hash, version := range versions {
			result[hash] = version
		}
	}

	return result, nil
}
