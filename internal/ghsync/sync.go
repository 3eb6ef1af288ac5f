package ghsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/pkg/logger"
)

const syncTimeout = 30 * time.Second

// AssignmentSource supplies the assignments to render. It decouples the
// syncer from the storage layer.
type AssignmentSource func(ctx context.Context) ([]*models.Assignment, error)

// Options configures the syncer target.
type Options struct {
	Owner    string
	Repo     string
	FilePath string
	Token    string
	Debounce time.Duration
}

// Syncer mirrors the assignment board into a markdown file in a GitHub
// repository. Writes are debounced so a burst of mutations produces one
// commit, and conditioned on the file's current SHA so a concurrent edit
// fails loudly instead of being overwritten silently.
type Syncer struct {
	client *github.Client
	opts   Options
	source AssignmentSource

	mu    sync.Mutex
	timer *time.Timer
}

// NewSyncer creates a syncer for the configured repository.
func NewSyncer(opts Options, source AssignmentSource) *Syncer {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	if opts.Debounce <= 0 {
		opts.Debounce = 5 * time.Second
	}

	return &Syncer{
		client: github.NewClient(httpClient),
		opts:   opts,
		source: source,
	}
}

// Notify schedules a sync after the debounce window. Further calls within
// the window reset the timer, so only the last one fires.
func (s *Syncer) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		if err := s.Sync(ctx); err != nil {
			logger.Warn().Err(err).Msg("README sync failed")
		}
	})
}

// Close cancels any pending sync.
func (s *Syncer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Sync fetches the current file, splices the assignment tables in and
// pushes the result. A file that would not change is left alone.
func (s *Syncer) Sync(ctx context.Context) error {
	assignments, err := s.source(ctx)
	if err != nil {
		return fmt.Errorf("error loading assignments: %w", err)
	}

	current, sha, err := s.fetchFile(ctx)
	if err != nil {
		return err
	}

	updated := RenderSections(current, assignments)
	if updated == current {
		logger.Debug().Msg("README already up to date, skipping sync")
		return nil
	}

	message := fmt.Sprintf("Update documentation status (%s)", time.Now().Format("2006-01-02 15:04"))
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(updated),
	}

	if sha == "" {
		_, _, err = s.client.Repositories.CreateFile(ctx, s.opts.Owner, s.opts.Repo, s.opts.FilePath, opts)
	} else {
		opts.SHA = github.String(sha)
		_, _, err = s.client.Repositories.UpdateFile(ctx, s.opts.Owner, s.opts.Repo, s.opts.FilePath, opts)
	}
	if err != nil {
		return fmt.Errorf("error pushing file: %w", err)
	}

	logger.Info().
		Str("repo", s.opts.Owner+"/"+s.opts.Repo).
		Str("path", s.opts.FilePath).
		Msg("README synced")
	return nil
}

// fetchFile returns the file's decoded content and SHA, or empty values
// when the file does not exist yet.
func (s *Syncer) fetchFile(ctx context.Context) (content, sha string, err error) {
	fileContent, _, resp, err := s.client.Repositories.GetContents(
		ctx, s.opts.Owner, s.opts.Repo, s.opts.FilePath, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return "", "", nil
		}
		return "", "", fmt.Errorf("error fetching file: %w", err)
	}

	content, err = fileContent.GetContent()
	if err != nil {
		return "", "", fmt.Errorf("error decoding file content: %w", err)
	}
	return content, fileContent.GetSHA(), nil
}
