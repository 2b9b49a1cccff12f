// Package intake reads the scanner drop folder for the ingestion job.
package intake

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	mailroomapp "github.com/opsdesk/backend/internal/application/mailroom"
)

var _ mailroomapp.DropFolder = (*LocalDropFolder)(nil)

// LocalDropFolder reads scanner submissions from a directory tree: one
// subdirectory per submission with its files directly inside.
type LocalDropFolder struct {
	root   string
	logger *zap.Logger
}

// NewLocalDropFolder creates a drop folder rooted at the given directory,
// creating it when missing.
func NewLocalDropFolder(root string, logger *zap.Logger) (*LocalDropFolder, error) {
	if root == "" {
		return nil, fmt.Errorf("drop folder path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create drop folder: %w", err)
	}

	return &LocalDropFolder{root: root, logger: logger}, nil
}

// ListSubmissions returns one entry per subdirectory with the plain files
// inside it. Files at the root and nested directories are ignored.
func (f *LocalDropFolder) ListSubmissions(ctx context.Context) ([]mailroomapp.DropSubmission, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read drop folder: %w", err)
	}

	var submissions []mailroomapp.DropSubmission
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		files, err := os.ReadDir(filepath.Join(f.root, entry.Name()))
		if err != nil {
			f.logger.Warn("skipping unreadable drop folder submission",
				zap.String("submission", entry.Name()),
				zap.Error(err),
			)
			continue
		}

		sub := mailroomapp.DropSubmission{Name: entry.Name()}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			sub.Files = append(sub.Files, file.Name())
		}
		submissions = append(submissions, sub)
	}

	return submissions, nil
}

// ReadFile returns the contents of one file inside a submission
func (f *LocalDropFolder) ReadFile(ctx context.Context, submission, name string) ([]byte, error) {
	path, err := f.submissionPath(submission, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission file: %w", err)
	}
	return data, nil
}

// RemoveSubmission deletes the submission directory and everything in it.
// Removing a submission that is already gone is not an error.
func (f *LocalDropFolder) RemoveSubmission(ctx context.Context, submission string) error {
	path, err := f.submissionPath(submission)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove submission: %w", err)
	}
	return nil
}

// submissionPath joins validated path elements under the root. Elements
// carrying separators or relative references are rejected so a crafted
// submission name cannot escape the folder.
func (f *LocalDropFolder) submissionPath(elems ...string) (string, error) {
	for _, elem := range elems {
		if elem == "" || elem == "." || elem == ".." || strings.ContainsAny(elem, `/\`) {
			return "", fmt.Errorf("invalid submission path element: %s", elem)
		}
	}
	return filepath.Join(append([]string{f.root}, elems...)...), nil
}
