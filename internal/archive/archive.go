// Package archive versions the markdown of each generated document in
// a per-document git repository, giving the editor a revision history.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const contentFile = "document.md"

// RevisionInfo describes one saved revision.
type RevisionInfo struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service manages one bare-worktree git repo per document under baseDir.
type Service struct {
	baseDir string
	lockMu  sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(baseDir string) *Service {
	return &Service{
		baseDir: baseDir,
		locks:   make(map[string]*sync.Mutex),
	}
}

// SaveRevision commits the document markdown, initializing the repo on
// first save. It returns the new revision.
func (s *Service) SaveRevision(documentID, markdown, author, message string) (RevisionInfo, error) {
	lock := s.documentLock(documentID)
	lock.Lock()
	defer lock.Unlock()

	path := s.repoPath(documentID)
	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = s.initRepo(path)
	}
	if err != nil {
		return RevisionInfo{}, fmt.Errorf("open repo: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return RevisionInfo{}, fmt.Errorf("open worktree: %w", err)
	}

	if err := os.WriteFile(filepath.Join(path, contentFile), []byte(markdown), 0o644); err != nil {
		return RevisionInfo{}, fmt.Errorf("write document content: %w", err)
	}
	if _, err := worktree.Add(contentFile); err != nil {
		return RevisionInfo{}, fmt.Errorf("git add content: %w", err)
	}

	if message == "" {
		message = "Update document"
	}
	if author == "" {
		author = "user"
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: fmt.Sprintf("%s@local.docai.dev", sanitizeEmail(author)),
			When:  time.Now(),
		},
	})
	if err != nil {
		return RevisionInfo{}, fmt.Errorf("commit content: %w", err)
	}

	commitObj, err := repo.CommitObject(hash)
	if err != nil {
		return RevisionInfo{}, fmt.Errorf("read commit object: %w", err)
	}
	return toRevisionInfo(commitObj), nil
}

// History returns the document's revisions, newest first. A limit of 0
// means no limit.
func (s *Service) History(documentID string, limit int) ([]RevisionInfo, error) {
	lock := s.documentLock(documentID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(documentID))
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve head: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	items := make([]RevisionInfo, 0, limit)
	count := 0
	err = iter.ForEach(func(commitObj *object.Commit) error {
		items = append(items, toRevisionInfo(commitObj))
		count++
		if limit > 0 && count >= limit {
			return io.EOF
		}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("iterate log: %w", err)
	}
	return items, nil
}

// Revision returns the document markdown at a specific revision.
func (s *Service) Revision(documentID, hash string) (string, RevisionInfo, error) {
	lock := s.documentLock(documentID)
	lock.Lock()
	defer lock.Unlock()

	repo, err := git.PlainOpen(s.repoPath(documentID))
	if err != nil {
		return "", RevisionInfo{}, fmt.Errorf("open repo: %w", err)
	}

	resolvedHash, err := resolveHash(repo, hash)
	if err != nil {
		return "", RevisionInfo{}, err
	}
	commitObj, err := repo.CommitObject(resolvedHash)
	if err != nil {
		return "", RevisionInfo{}, fmt.Errorf("read commit %s: %w", hash, err)
	}

	file, err := commitObj.File(contentFile)
	if err != nil {
		return "", RevisionInfo{}, fmt.Errorf("load document from commit: %w", err)
	}
	content, err := file.Contents()
	if err != nil {
		return "", RevisionInfo{}, fmt.Errorf("read document content: %w", err)
	}
	return content, toRevisionInfo(commitObj), nil
}

func (s *Service) initRepo(path string) (*git.Repository, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create repo dir: %w", err)
	}
	repo, err := git.PlainInit(path, false)
	if err != nil {
		return nil, fmt.Errorf("init repo: %w", err)
	}
	return repo, nil
}

func (s *Service) repoPath(documentID string) string {
	return filepath.Join(s.baseDir, documentID)
}

func (s *Service) documentLock(documentID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.locks[documentID]
	if ok {
		return lock
	}
	lock = &sync.Mutex{}
	s.locks[documentID] = lock
	return lock
}

func toRevisionInfo(commitObj *object.Commit) RevisionInfo {
	return RevisionInfo{
		Hash:      commitObj.Hash.String()[:7],
		Message:   commitObj.Message,
		Author:    commitObj.Author.Name,
		CreatedAt: commitObj.Author.When,
	}
}

func sanitizeEmail(input string) string {
	runes := make([]rune, 0, len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			runes = append(runes, r)
			continue
		}
		if r == ' ' || r == '-' || r == '_' {
			runes = append(runes, '.')
		}
	}
	if len(runes) == 0 {
		return "user"
	}
	return string(runes)
}

func resolveHash(repo *git.Repository, hash string) (plumbing.Hash, error) {
	if len(hash) == 40 {
		return plumbing.NewHash(hash), nil
	}
	resolved, err := repo.ResolveRevision(plumbing.Revision(hash))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve hash %s: %w", hash, err)
	}
	return *resolved, nil
}
