package models

import "encoding/json"

// Index maps course name to roll number to record.
// An Index is read-only once built; a reload produces a new one.
type Index struct {
	courses []string
	records map[string]map[string]AttendanceRecord
	sources map[string][]Source
}

// Courses returns the course names in the order they were first merged.
func (idx *Index) Courses() []string {
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx.courses))
	copy(out, idx.courses)
	return out
}

// Len returns the number of courses.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.courses)
}

// Empty reports whether the index holds no courses.
func (idx *Index) Empty() bool {
	return idx.Len() == 0
}

// Record returns the record for a roll number within a course.
// roll must already be normalized.
func (idx *Index) Record(course, roll string) (AttendanceRecord, bool) {
	if idx == nil {
		return AttendanceRecord{}, false
	}
	rec, ok := idx.records[course][roll]
	return rec, ok
}

// Students returns the number of roll numbers indexed for a course.
func (idx *Index) Students(course string) int {
	if idx == nil {
		return 0
	}
	return len(idx.records[course])
}

// Sources returns the files that contributed to a course, in merge order.
func (idx *Index) Sources(course string) []Source {
	if idx == nil {
		return nil
	}
	out := make([]Source, len(idx.sources[course]))
	copy(out, idx.sources[course])
	return out
}

// IndexBuilder accumulates course sheets into a new Index.
type IndexBuilder struct {
	idx *Index
}

// NewIndexBuilder returns an empty builder.
func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{idx: newIndex()}
}

func newIndex() *Index {
	return &Index{
		records: make(map[string]map[string]AttendanceRecord),
		sources: make(map[string][]Source),
	}
}

// Merge adds a sheet's records under its course name. A roll number already
// present in that course is overwritten. Sheets without a course name are
// ignored.
func (b *IndexBuilder) Merge(sheet CourseSheet, src Source) {
	if sheet.Empty() {
		return
	}
	course := sheet.CourseName
	students, ok := b.idx.records[course]
	if !ok {
		students = make(map[string]AttendanceRecord, len(sheet.Records))
		b.idx.records[course] = students
		b.idx.courses = append(b.idx.courses, course)
	}
	for roll, rec := range sheet.Records {
		students[roll] = rec
	}
	if src != (Source{}) {
		b.idx.sources[course] = append(b.idx.sources[course], src)
	}
}

// Build returns the accumulated Index and resets the builder.
func (b *IndexBuilder) Build() *Index {
	idx := b.idx
	b.idx = newIndex()
	return idx
}

type serializableCourse struct {
	Name     string                      `json:"name"`
	Students map[string]AttendanceRecord `json:"students"`
	Sources  []Source                    `json:"sources,omitempty"`
}

type serializableIndex struct {
	Courses []serializableCourse `json:"courses"`
}

// MarshalJSON encodes the index with its course order preserved.
func (idx *Index) MarshalJSON() ([]byte, error) {
	s := serializableIndex{Courses: []serializableCourse{}}
	if idx != nil {
		for _, name := range idx.courses {
			s.Courses = append(s.Courses, serializableCourse{
				Name:     name,
				Students: idx.records[name],
				Sources:  idx.sources[name],
			})
		}
	}
	return json.Marshal(s)
}

// UnmarshalJSON replaces the index with the decoded content.
func (idx *Index) UnmarshalJSON(data []byte) error {
	var s serializableIndex
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b := NewIndexBuilder()
	for _, c := range s.Courses {
		if c.Name == "" {
			continue
		}
		b.Merge(CourseSheet{CourseName: c.Name, Records: c.Students}, Source{})
		b.idx.sources[c.Name] = append(b.idx.sources[c.Name], c.Sources...)
	}
	*idx = *b.Build()
	return nil
}
