// Package model defines the data structures shared by the grading workflow.
package model

// Path represents a file system path.
type Path string

// Role identifies the logical part a source file plays in a lab
// (entry file, static component, dynamic component, ...).
type Role string

const (
	// RoleEntry is the application entry file (App.jsx / App.js).
	RoleEntry Role = "entry"
	// RoleStatic is the hardcoded student card component.
	RoleStatic Role = "static"
	// RoleDynamic is the props-driven student card component.
	RoleDynamic Role = "dynamic"
)

// FileCandidates describes where the file for a role is expected to live.
type FileCandidates struct {
	Role Role
	// Label is the human name of the file, e.g. "Static card".
	Label string
	// Preferred paths are relative to the project root and tried in order.
	Preferred []Path
	// Names are accepted base names (case-insensitive) for the fallback search.
	Names []string
	// NotFound is shown in reports when no candidate exists.
	NotFound string
}

// Source is the raw content located for one role. Content is nil when no
// file was found or the file could not be read.
type Source struct {
	Role    Role
	Path    Path
	Content *string
	ReadErr error
}

// Found reports whether a file was located for the role.
func (s Source) Found() bool {
	return s.Path != ""
}

// Available reports whether the source has non-empty content to grade.
// Empty files count as missing.
func (s Source) Available() bool {
	return s.Content != nil && *s.Content != ""
}

// FileStatus is the report entry describing what was located for a role.
type FileStatus struct {
	Role     Role   `json:"role"`
	Label    string `json:"label"`
	Path     Path   `json:"path,omitempty"`
	Found    bool   `json:"found"`
	Readable bool   `json:"readable"`
	SHA256   string `json:"sha256,omitempty"`
	NotFound string `json:"not_found,omitempty"`
}
