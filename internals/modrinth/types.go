package modrinth

import "time"

type File struct {
	Hashes struct {
		Sha512 string `json:"sha512"`
		Sha1   string `json:"sha1"`
	} `json:"hashes"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Primary  bool   `json:"primary"`
	Size     int    `json:"size"`
}

type Version struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	Name          string    `json:"name"`
	VersionNumber string    `json:"version_number"`
	DatePublished time.Time `json:"date_published"`
	VersionType   string    `json:"version_type"`
	Files         []File    `json:"files"`
	GameVersions  []string  `json:"game_versions"`
	Loaders       []string  `json:"loaders"`
}

// RelevantFile returns the file that matters for this version:
// the only file if there is just one, otherwise the one flagged primary.
// Returns nil if there is no such file
func (v *Version) RelevantFile() *File {
	if len(v.Files) == 1 {
		return &v.Files[0]
	}
	for i := range v.Files {
		if v.Files[i].Primary {
			return &v.Files[i]
		}
	}
	return nil
}
