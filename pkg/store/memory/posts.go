package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

/* ================================ Posts ================================= */

// CreatePost publishes a consultation request. The author's name and
// role are snapshotted onto the post; new posts go to the front so the
// listing stays most-recent-first.
func (s *Store) CreatePost(ctx context.Context, authorID, title, description string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	author, err := s.activeUserByID(authorID)
	if err != nil {
		return nil, err
	}

	p := &models.Post{
		ID:          uuid.NewString(),
		AuthorID:    author.ID,
		AuthorName:  author.FullName,
		AuthorRole:  author.Role,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
		Comments:    []models.Comment{},
	}

	s.posts = append([]*models.Post{p}, s.posts...)
	s.savePosts()
	return p.Clone(), nil
}

// ListPosts returns every post, most recent first.
func (s *Store) ListPosts(ctx context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.postByID(id)
	if p == nil {
		return nil, store.ErrNotFound
	}
	return p.Clone(), nil
}

// UpdatePost edits title/description. Only the author or an admin may
// edit; empty fields are left untouched.
func (s *Store) UpdatePost(ctx context.Context, actorID, postID, title, description string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.postByID(postID)
	if p == nil {
		return nil, store.ErrNotFound
	}
	if err := s.mayModeratePost(actorID, p); err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(title); t != "" {
		p.Title = t
	}
	if d := strings.TrimSpace(description); d != "" {
		p.Description = d
	}
	s.savePosts()
	return p.Clone(), nil
}

// DeletePost removes a post and its comments. Owner or admin only.
func (s *Store) DeletePost(ctx context.Context, actorID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.posts {
		if p.ID == postID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return store.ErrNotFound
	}
	if err := s.mayModeratePost(actorID, s.posts[idx]); err != nil {
		return err
	}

	s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	s.savePosts()
	return nil
}

func (s *Store) mayModeratePost(actorID string, p *models.Post) error {
	actor := s.userByID(actorID)
	if actor == nil {
		return store.ErrForbidden
	}
	if actor.AccountStatus == models.AccountBanned {
		return store.ErrBanned
	}
	if actor.ID != p.AuthorID && actor.Role != models.RoleAdmin {
		return store.ErrForbidden
	}
	return nil
}

/* =============================== Comments =============================== */

// AddComment appends a comment (or priced offer) to a post. The
// author's name, role, and specialty are snapshotted; whether a cost is
// required or forbidden is the caller's rule, not the store's.
func (s *Store) AddComment(ctx context.Context, postID, authorID, text, cost string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.postByID(postID)
	if p == nil {
		return nil, store.ErrNotFound
	}
	author, err := s.activeUserByID(authorID)
	if err != nil {
		return nil, err
	}

	c := models.Comment{
		ID:         uuid.NewString(),
		AuthorID:   author.ID,
		AuthorName: author.FullName,
		AuthorRole: author.Role,
		Text:       strings.TrimSpace(text),
		Cost:       strings.TrimSpace(cost),
		CreatedAt:  s.now(),
	}
	if author.Lawyer != nil {
		c.AuthorSpecialty = author.Lawyer.Specialty
	}

	p.Comments = append(p.Comments, c)
	s.savePosts()
	return &c, nil
}
