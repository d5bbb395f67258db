// Package enrichment turns raw content rows into viewer-specific payloads:
// author summary, aggregate counts and viewer-relative flags. All lookups
// are batched over the page's id set; nothing here mutates an entity.
package enrichment

import (
	"log"
	"strconv"

	"github.com/buildhubhq/buildhub-backend/internal/models"
	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/samber/lo"
)

// PostView is a post decorated for one viewer.
type PostView struct {
	models.Post
	Author        models.UserCompact `json:"author"`
	LikesCount    int64              `json:"likes_count"`
	CommentsCount int64              `json:"comments_count"`
	IsLiked       bool               `json:"is_liked"`
	IsBookmarked  bool               `json:"is_bookmarked"`
}

// ProjectView is a project decorated for one viewer.
type ProjectView struct {
	models.Project
	Author        models.UserCompact `json:"author"`
	Upvotes       int64              `json:"upvotes"`
	Downvotes     int64              `json:"downvotes"`
	CommentsCount int64              `json:"comments_count"`
	HasUpvoted    bool               `json:"has_upvoted"`
	HasDownvoted  bool               `json:"has_downvoted"`
	IsBookmarked  bool               `json:"is_bookmarked"`
}

// ResourceView is a resource decorated for one viewer.
type ResourceView struct {
	models.Resource
	Author        models.UserCompact `json:"author"`
	Upvotes       int64              `json:"upvotes"`
	Downvotes     int64              `json:"downvotes"`
	CommentsCount int64              `json:"comments_count"`
	HasUpvoted    bool               `json:"has_upvoted"`
	HasDownvoted  bool               `json:"has_downvoted"`
	IsBookmarked  bool               `json:"is_bookmarked"`
}

// Enricher decorates raw rows with authors, counts and viewer flags.
type Enricher struct {
	userRepository     repositories.UserRepository
	profileRepository  repositories.ProfileRepository
	voteRepository     repositories.VoteRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.BookmarkRepository
	commentRepository  repositories.CommentRepository
}

// NewEnricher creates a new Enricher
func NewEnricher(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	voteRepo repositories.VoteRepository,
	likeRepo repositories.LikeRepository,
	bookmarkRepo repositories.BookmarkRepository,
	commentRepo repositories.CommentRepository,
) *Enricher {
	return &Enricher{
		userRepository:     userRepo,
		profileRepository:  profileRepo,
		voteRepository:     voteRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
		commentRepository:  commentRepo,
	}
}

// ResolveAuthors builds author summaries for a set of user ids in two
// queries. Users without a profile are auto-provisioned one; ids that
// resolve to no user at all are left out of the map, and callers render the
// zero-value placeholder.
func (e *Enricher) ResolveAuthors(userIDs []uint) map[uint]models.UserCompact {
	result := make(map[uint]models.UserCompact)
	ids := lo.Uniq(userIDs)
	if len(ids) == 0 {
		return result
	}

	users, err := e.userRepository.GetUsersByIDs(ids)
	if err != nil {
		log.Printf("enrichment: resolving authors failed: %v", err)
		return result
	}
	profiles, err := e.profileRepository.GetByUserIDs(ids)
	if err != nil {
		log.Printf("enrichment: resolving profiles failed: %v", err)
		profiles = map[uint]models.Profile{}
	}

	for id, user := range users {
		u := user
		profile, ok := profiles[id]
		if !ok {
			if provisioned, err := e.profileRepository.EnsureProfile(id); err == nil {
				profile = *provisioned
			}
		}
		result[id] = u.ToCompact(&profile)
	}
	return result
}

// EnrichPosts decorates a page of posts. viewerID 0 means anonymous: every
// viewer-relative flag stays false and no per-viewer query runs.
func (e *Enricher) EnrichPosts(posts []models.Post, viewerID uint) ([]PostView, error) {
	postIDs := lo.Map(posts, func(p models.Post, _ int) string { return p.ID.Hex() })
	authorIDs := lo.Map(posts, func(p models.Post, _ int) uint { return p.AuthorID })

	authors := e.ResolveAuthors(authorIDs)

	likeCounts, err := e.likeRepository.CountsByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := e.commentRepository.CountsByEntityIDs(models.EntityTypePost, postIDs)
	if err != nil {
		return nil, err
	}

	likedMap := map[string]bool{}
	bookmarkedMap := map[string]bool{}
	if viewerID > 0 {
		if likedMap, err = e.likeRepository.LikedPostIDs(postIDs, viewerID); err != nil {
			return nil, err
		}
		if bookmarkedMap, err = e.bookmarkRepository.BookmarkedIDs(viewerID, models.EntityTypePost, postIDs); err != nil {
			return nil, err
		}
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		pid := p.ID.Hex()
		views[i] = PostView{
			Post:          p,
			Author:        authors[p.AuthorID],
			LikesCount:    likeCounts[pid],
			CommentsCount: commentCounts[pid],
			IsLiked:       likedMap[pid],
			IsBookmarked:  bookmarkedMap[pid],
		}
	}
	return views, nil
}

// EnrichProjects decorates a page of projects.
func (e *Enricher) EnrichProjects(projects []models.Project, viewerID uint) ([]ProjectView, error) {
	projectIDs := lo.Map(projects, func(p models.Project, _ int) string {
		return strconv.FormatUint(uint64(p.ID), 10)
	})
	authorIDs := lo.Map(projects, func(p models.Project, _ int) uint { return p.OwnerID })

	authors := e.ResolveAuthors(authorIDs)

	voteCounts, err := e.voteRepository.CountsByEntityIDs(models.EntityTypeProject, projectIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := e.commentRepository.CountsByEntityIDs(models.EntityTypeProject, projectIDs)
	if err != nil {
		return nil, err
	}

	viewerVotes := map[string]int{}
	bookmarkedMap := map[string]bool{}
	if viewerID > 0 {
		if viewerVotes, err = e.voteRepository.VotesByUser(models.EntityTypeProject, projectIDs, viewerID); err != nil {
			return nil, err
		}
		if bookmarkedMap, err = e.bookmarkRepository.BookmarkedIDs(viewerID, models.EntityTypeProject, projectIDs); err != nil {
			return nil, err
		}
	}

	views := make([]ProjectView, len(projects))
	for i, p := range projects {
		pid := projectIDs[i]
		counts := voteCounts[pid]
		views[i] = ProjectView{
			Project:       p,
			Author:        authors[p.OwnerID],
			Upvotes:       counts.Upvotes,
			Downvotes:     counts.Downvotes,
			CommentsCount: commentCounts[pid],
			HasUpvoted:    viewerVotes[pid] == models.VoteUp,
			HasDownvoted:  viewerVotes[pid] == models.VoteDown,
			IsBookmarked:  bookmarkedMap[pid],
		}
	}
	return views, nil
}

// EnrichResources decorates a page of resources.
func (e *Enricher) EnrichResources(resources []models.Resource, viewerID uint) ([]ResourceView, error) {
	resourceIDs := lo.Map(resources, func(r models.Resource, _ int) string {
		return strconv.FormatUint(uint64(r.ID), 10)
	})
	authorIDs := lo.Map(resources, func(r models.Resource, _ int) uint { return r.OwnerID })

	authors := e.ResolveAuthors(authorIDs)

	voteCounts, err := e.voteRepository.CountsByEntityIDs(models.EntityTypeResource, resourceIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := e.commentRepository.CountsByEntityIDs(models.EntityTypeResource, resourceIDs)
	if err != nil {
		return nil, err
	}

	viewerVotes := map[string]int{}
	bookmarkedMap := map[string]bool{}
	if viewerID > 0 {
		if viewerVotes, err = e.voteRepository.VotesByUser(models.EntityTypeResource, resourceIDs, viewerID); err != nil {
			return nil, err
		}
		if bookmarkedMap, err = e.bookmarkRepository.BookmarkedIDs(viewerID, models.EntityTypeResource, resourceIDs); err != nil {
			return nil, err
		}
	}

	views := make([]ResourceView, len(resources))
	for i, res := range resources {
		rid := resourceIDs[i]
		counts := voteCounts[rid]
		views[i] = ResourceView{
			Resource:      res,
			Author:        authors[res.OwnerID],
			Upvotes:       counts.Upvotes,
			Downvotes:     counts.Downvotes,
			CommentsCount: commentCounts[rid],
			HasUpvoted:    viewerVotes[rid] == models.VoteUp,
			HasDownvoted:  viewerVotes[rid] == models.VoteDown,
			IsBookmarked:  bookmarkedMap[rid],
		}
	}
	return views, nil
}
