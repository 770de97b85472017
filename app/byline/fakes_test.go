package byline

import (
	"context"
	"fmt"
)

// fakeGuestAuthorStore is an in-memory GuestAuthorStore used across the
// package tests.
type fakeGuestAuthorStore struct {
	nextID  int64
	byLogin map[string]GuestAuthor
	bylines map[int64][]string
	active  bool

	createCount int
	findErr     error
	createErr   error
	setErr      error
}

func newFakeGuestAuthorStore() *fakeGuestAuthorStore {
	return &fakeGuestAuthorStore{
		nextID:  100,
		byLogin: make(map[string]GuestAuthor),
		bylines: make(map[int64][]string),
		active:  true,
	}
}

func (s *fakeGuestAuthorStore) FindGuestAuthor(_ context.Context, login string) (*GuestAuthor, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if author, ok := s.byLogin[login]; ok {
		return &author, nil
	}
	return nil, nil
}

func (s *fakeGuestAuthorStore) CreateGuestAuthor(_ context.Context, displayName, login string) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	if _, ok := s.byLogin[login]; ok {
		return 0, fmt.Errorf("duplicate login %q", login)
	}
	s.nextID++
	s.createCount++
	s.byLogin[login] = GuestAuthor{ID: s.nextID, Login: login, DisplayName: displayName}
	return s.nextID, nil
}

func (s *fakeGuestAuthorStore) SetPostAuthors(_ context.Context, postID int64, logins []string, appendAuthors bool) error {
	if s.setErr != nil {
		return s.setErr
	}
	if appendAuthors {
		s.bylines[postID] = append(s.bylines[postID], logins...)
		return nil
	}
	s.bylines[postID] = append([]string{}, logins...)
	return nil
}

func (s *fakeGuestAuthorStore) IsCoAuthorsPlusActive(_ context.Context) (bool, error) {
	return s.active, nil
}

// fakeContentStore serves a fixed tag set per post and records write-backs.
type fakeContentStore struct {
	tags     map[int64][]Tag
	setTags  map[int64][]string
	removed  map[int64][]int64
	postIDs  []int64
	tagsErr  error
	setErr   error
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{
		tags:    make(map[int64][]Tag),
		setTags: make(map[int64][]string),
		removed: make(map[int64][]int64),
	}
}

func (s *fakeContentStore) GetPostTags(_ context.Context, postID int64) ([]Tag, error) {
	if s.tagsErr != nil {
		return nil, s.tagsErr
	}
	var tags []Tag
	for _, tag := range s.tags[postID] {
		if tag.Taxonomy == "post_tag" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (s *fakeContentStore) GetPostTagsInTaxonomy(_ context.Context, postID int64, taxonomy string) ([]Tag, error) {
	if s.tagsErr != nil {
		return nil, s.tagsErr
	}
	var tags []Tag
	for _, tag := range s.tags[postID] {
		if tag.Taxonomy == taxonomy {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (s *fakeContentStore) SetPostTags(_ context.Context, postID int64, names []string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setTags[postID] = append([]string{}, names...)
	return nil
}

func (s *fakeContentStore) RemovePostTerms(_ context.Context, postID int64, _ string, termIDs []int64) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.removed[postID] = append(s.removed[postID], termIDs...)
	return nil
}

func (s *fakeContentStore) FindPublishedPosts(_ context.Context, _ string) ([]int64, error) {
	return s.postIDs, nil
}

func (s *fakeContentStore) FindPostsWithTaxonomy(_ context.Context, _ string) ([]int64, error) {
	return s.postIDs, nil
}
