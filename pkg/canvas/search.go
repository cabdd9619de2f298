package canvas

import "strings"

// FindCourse returns the first course, in the given order, whose name or
// course code contains query case-insensitively. A missing name or code
// matches as the empty string. Returns nil when nothing matches.
func FindCourse(courses []Course, query string) *Course {
	needle := strings.ToLower(query)

	for i := range courses {
		name := strings.ToLower(StringValue(courses[i].Name))
		code := strings.ToLower(StringValue(courses[i].CourseCode))

		if strings.Contains(name, needle) || strings.Contains(code, needle) {
			return &courses[i]
		}
	}

	return nil
}
