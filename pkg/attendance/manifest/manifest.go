// Package manifest lists the remote attendance files to load.
package manifest

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

// DefaultBaseURL is the host the published attendance sheets are served from.
const DefaultBaseURL = "https://raw.githubusercontent.com/iimindore/attendance-system/main/attendance-files"

// Subject lists the files published under one subject directory.
type Subject struct {
	// Name is the subject directory.
	Name string `json:"name"`
	// Files are file names taken as-is.
	Files []string `json:"files,omitempty"`
	// Pattern is a file name with a single %s, expanded once per section.
	Pattern string `json:"pattern,omitempty"`
	// Sections are substituted into Pattern in order.
	Sections []string `json:"sections,omitempty"`
}

// FileNames returns the subject's files followed by the expanded pattern.
func (s Subject) FileNames() []string {
	names := make([]string, 0, len(s.Files)+len(s.Sections))
	names = append(names, s.Files...)
	if s.Pattern != "" {
		for _, section := range s.Sections {
			names = append(names, fmt.Sprintf(s.Pattern, section))
		}
	}
	return names
}

// Manifest is a declarative list of sources.
type Manifest struct {
	BaseURL  string    `json:"base_url"`
	Subjects []Subject `json:"subjects"`
}

// Sources resolves the manifest into download entries.
func (m Manifest) Sources() []models.Source {
	return Build(m.BaseURL, m.Subjects)
}

// Build combines the subject table with baseURL. The result follows the
// table order and is the same for the same input.
func Build(baseURL string, subjects []Subject) []models.Source {
	base := strings.TrimRight(baseURL, "/")
	var sources []models.Source
	for _, subject := range subjects {
		for _, file := range subject.FileNames() {
			sources = append(sources, models.Source{
				Name: file,
				Path: subject.Name,
				URL:  base + "/" + url.PathEscape(subject.Name) + "/" + url.PathEscape(file),
			})
		}
	}
	return sources
}

// Default returns the built-in manifest.
func Default() Manifest {
	return Manifest{
		BaseURL:  DefaultBaseURL,
		Subjects: DefaultSubjects(),
	}
}

var allSections = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

func sectioned(name string) Subject {
	return Subject{
		Name:     name,
		Pattern:  name + " (%s) Attendance Sheet.xlsx",
		Sections: append([]string(nil), allSections...),
	}
}

// DefaultSubjects returns the built-in subject table.
func DefaultSubjects() []Subject {
	return []Subject{
		sectioned("DT"),
		sectioned("FA-II"),
		{Name: "FIM", Files: []string{
			"FIM-D (ABCD) Attendance Sheet.xlsx",
			"FIM-D (EFGH) Attendance Sheet.xlsx",
			"FIM-U (ABCD) Attendance Sheet.xlsx",
			"FIM-U (EFGH) Attendance Sheet.xlsx",
		}},
		sectioned("HRM"),
		sectioned("LAB"),
		{Name: "MR", Files: []string{
			"MR-A (ABCD) Attendance Sheet.xlsx",
			"MR-A (EFGH) Attendance Sheet.xlsx",
			"MR-B (ABCD) Attendance Sheet.xlsx",
			"MR-B (EFGH) Attendance Sheet.xlsx",
			"MR-S (ABCD) Attendance Sheet.xlsx",
			"MR-S (EFGH) Attendance Sheet.xlsx",
		}},
		{Name: "SCM", Files: []string{
			"SCM-H Attendance Sheet.xlsx",
			"SCM-R (ABCD) Attendance.xlsx",
			"SCM-R (EFGH) Attendance.xlsx",
		}},
		{Name: "SDM", Files: []string{
			"SDM-A (ABCD) Attendance Sheet.xlsx",
			"SDM-A (EFGH) Attendance Sheet.xlsx",
			"SDM-M (ABCD) Attendance Sheet.xlsx",
			"SDM-M (EFGH) Attendance Sheet.xlsx",
		}},
		sectioned("SIP"),
		sectioned("SM-II"),
	}
}

// LoadFile reads a JSON manifest. A missing base_url falls back to
// DefaultBaseURL.
func LoadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	if m.BaseURL == "" {
		m.BaseURL = DefaultBaseURL
	}
	for i, s := range m.Subjects {
		if s.Name == "" {
			return Manifest{}, fmt.Errorf("manifest %s: subject %d has no name", path, i)
		}
		if s.Pattern != "" && strings.Count(s.Pattern, "%s") != 1 {
			return Manifest{}, fmt.Errorf("manifest %s: subject %q pattern must contain exactly one %%s", path, s.Name)
		}
	}
	return m, nil
}
