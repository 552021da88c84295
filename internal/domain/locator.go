package domain

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	m "labgrade.dev/pkg/labgrade/internal/model"
)

// DefaultSkipDirs are never searched for student files.
var DefaultSkipDirs = []string{"node_modules", ".git", "artifacts", "dist", "build", ".next", ".cache"}

// Locate finds and reads the file of every role declared by the lab. A role
// without a file is not an error: its source is returned without content.
func (g *grader) Locate(ctx context.Context, args GradeArgs) ([]m.Source, []m.FileStatus, error) {
	finder := &fileFinder{grader: g, root: args.ProjectRoot, skipDirs: args.SkipDirs}

	sources := make([]m.Source, 0, len(args.Lab.Files))
	files := make([]m.FileStatus, 0, len(args.Lab.Files))

	for _, candidates := range args.Lab.Files {
		path, err := finder.find(ctx, candidates)
		if err != nil {
			return nil, nil, err
		}

		source := m.Source{Role: candidates.Role, Path: path}
		status := m.FileStatus{
			Role:     candidates.Role,
			Label:    candidates.Label,
			Path:     path,
			Found:    path != "",
			NotFound: candidates.NotFound,
		}

		if path != "" {
			g.read(ctx, &source, &status)
		} else {
			slog.Info("No file located for role", "role", candidates.Role, "projectRoot", args.ProjectRoot)
		}

		sources = append(sources, source)
		files = append(files, status)
	}

	return sources, files, nil
}

func (g *grader) read(ctx context.Context, source *m.Source, status *m.FileStatus) {
	content, err := g.fs.ReadFile(ctx, source.Path)
	if err != nil {
		slog.Warn("Failed to read located file", "role", source.Role, "path", source.Path, "error", err)
		source.ReadErr = err

		return
	}

	text := string(content)
	source.Content = &text
	status.Readable = true

	hash, err := g.fs.HashFile(ctx, source.Path)
	if err != nil {
		slog.Warn("Failed to hash located file", "path", source.Path, "error", err)
		return
	}

	status.SHA256 = hash
}

// fileFinder resolves candidates against one project, listing the project
// at most once.
type fileFinder struct {
	grader   *grader
	root     m.Path
	skipDirs []string
	listed   bool
	all      []m.Path
}

func (f *fileFinder) find(ctx context.Context, candidates m.FileCandidates) (m.Path, error) {
	for _, rel := range candidates.Preferred {
		path := f.grader.fs.JoinPath(ctx, string(f.root), string(rel))
		if f.grader.fs.IsFile(ctx, path) {
			return path, nil
		}
	}

	if len(candidates.Names) == 0 {
		return "", nil
	}

	if !f.listed {
		all, err := f.grader.fs.ListFiles(ctx, f.root, f.skipDirs...)
		if err != nil {
			return "", err
		}

		f.all = all
		f.listed = true
	}

	names := make(map[string]struct{}, len(candidates.Names))
	for _, name := range candidates.Names {
		names[strings.ToLower(name)] = struct{}{}
	}

	for _, path := range f.all {
		if _, ok := names[strings.ToLower(filepath.Base(string(path)))]; ok {
			return path, nil
		}
	}

	return "", nil
}
