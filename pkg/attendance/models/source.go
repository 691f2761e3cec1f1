package models

// Source is one remote attendance file.
type Source struct {
	// Name is the file name.
	Name string `json:"name"`
	// Path is the subject directory the file lives under.
	Path string `json:"path"`
	// URL is the download location.
	URL string `json:"url"`
}
