package canvas

import "time"

// User represents the authenticated principal returned by /users/self.
type User struct {
	ID           int64   `json:"id"            yaml:"id"`
	Name         string  `json:"name"          yaml:"name"`
	SortableName *string `json:"sortable_name" yaml:"sortable_name"`
	Email        *string `json:"email"         yaml:"email"`
	LoginID      *string `json:"login_id"      yaml:"login_id"`
}

// Course represents a course visible to the authenticated user. Canvas omits
// most attributes on courses the caller can no longer access, so everything
// but the ID is optional.
type Course struct {
	ID            int64   `json:"id"             yaml:"id"`
	Name          *string `json:"name"           yaml:"name"`
	CourseCode    *string `json:"course_code"    yaml:"course_code"`
	WorkflowState *string `json:"workflow_state" yaml:"workflow_state"`
}

// Student represents a user enrolled in a course with the student role.
type Student struct {
	ID           int64   `json:"id"            yaml:"id"`
	Name         string  `json:"name"          yaml:"name"`
	SortableName *string `json:"sortable_name" yaml:"sortable_name"`
	Email        *string `json:"email"         yaml:"email"`
	LoginID      *string `json:"login_id"      yaml:"login_id"`
}

// Assignment represents a course assignment.
type Assignment struct {
	ID              int64      `json:"id"               yaml:"id"`
	Name            string     `json:"name"             yaml:"name"`
	DueAt           *time.Time `json:"due_at"           yaml:"due_at"`
	PointsPossible  *float64   `json:"points_possible"  yaml:"points_possible"`
	SubmissionTypes []string   `json:"submission_types" yaml:"submission_types"`
}

// Workflow states reported for courses.
const (
	WorkflowStateUnpublished = "unpublished"
	WorkflowStateAvailable   = "available"
	WorkflowStateCompleted   = "completed"
	WorkflowStateDeleted     = "deleted"
)

// Enrollment types accepted by the course users endpoint.
const (
	EnrollmentTypeStudent  = "student"
	EnrollmentTypeTeacher  = "teacher"
	EnrollmentTypeTA       = "ta"
	EnrollmentTypeObserver = "observer"
	EnrollmentTypeDesigner = "designer"
)

// StringValue dereferences an optional string, returning "" for nil.
func StringValue(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
