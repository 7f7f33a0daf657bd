package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forumhive/forum-api/internal/cache"
	"github.com/forumhive/forum-api/internal/db"
	"github.com/forumhive/forum-api/internal/models"
	"github.com/forumhive/forum-api/internal/query"
	"github.com/forumhive/forum-api/pkg/logging"
)

// VoteRequest is the payload for the vote toggle.
type VoteRequest struct {
	User    int64 `json:"user" binding:"required"`
	Comment int64 `json:"comment" binding:"required"`
}

// VoteAPI serves the /votes resource
type VoteAPI struct {
	votes    *db.VoteRepository
	comments *db.CommentRepository
	persons  *db.PersonRepository
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewVoteAPI creates a new vote API
func NewVoteAPI(votes *db.VoteRepository, comments *db.CommentRepository, persons *db.PersonRepository, redisCache *cache.Cache) *VoteAPI {
	return &VoteAPI{
		votes:    votes,
		comments: comments,
		persons:  persons,
		cache:    redisCache,
		logger:   logging.WithComponent("api-votes"),
	}
}

// Register attaches the vote routes to the group
func (a *VoteAPI) Register(g *gin.RouterGroup) {
	g.GET("", a.List)
	g.GET("/comment/:comment_id", a.ByComment)
	g.GET("/user/:user_id", a.ByUser)
	g.POST("", a.Toggle)
	g.DELETE("/:vote_id", a.Delete)
}

// list serves a filtered, sorted, paginated vote listing
func (a *VoteAPI) list(c *gin.Context, filter map[string]any) {
	limit, offset, sort, pageErr := pageParams(c)

	order, err := query.ValidOrder(models.VoteSchema, sort)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "votes": []models.Vote{}, "detail": invalidSortDetail})
		return
	}
	if pageErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "votes": []models.Vote{}, "detail": invalidPageDetail})
		return
	}

	ctx := c.Request.Context()
	total, err := a.votes.Count(ctx, filter)
	if err != nil {
		serverError(c, a.logger, "votes", err)
		return
	}
	votes, err := a.votes.List(ctx, order, limit, offset, filter)
	if err != nil {
		serverError(c, a.logger, "votes", err)
		return
	}
	if len(votes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "votes": []models.Vote{}, "detail": "Not Found"})
		return
	}

	c.JSON(http.StatusOK, query.Envelope(c.Request.URL.Path, c.Request.URL.RawQuery, "votes", votes, total, limit, offset))
}

// List handles GET /votes with pagination and sorting
func (a *VoteAPI) List(c *gin.Context) {
	a.list(c, nil)
}

// ByComment handles GET /votes/comment/:comment_id
func (a *VoteAPI) ByComment(c *gin.Context) {
	id, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "votes": []models.Vote{}, "detail": "Invalid comment ID"})
		return
	}

	comment, err := a.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		serverError(c, a.logger, "votes", err)
		return
	}
	if comment == nil {
		c.JSON(StatusOf(ErrCommentNotFound), gin.H{"success": false, "votes": []models.Vote{}, "detail": fmt.Sprintf("Comment %d doesn't exist", id)})
		return
	}

	a.list(c, map[string]any{"comment_id": id})
}

// ByUser handles GET /votes/user/:user_id
func (a *VoteAPI) ByUser(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "votes": []models.Vote{}, "detail": "Invalid user ID"})
		return
	}

	person, err := a.persons.GetByID(c.Request.Context(), id)
	if err != nil {
		serverError(c, a.logger, "votes", err)
		return
	}
	if person == nil {
		c.JSON(StatusOf(ErrOwnerNotFound), gin.H{"success": false, "votes": []models.Vote{}, "detail": fmt.Sprintf("User %d doesn't exist", id)})
		return
	}

	a.list(c, map[string]any{"user_id": id})
}

// Toggle handles POST /votes: a first vote for the (user, comment) pair
// creates a row, a second one removes it. The response always carries the
// post-operation vote count for the pair.
func (a *VoteAPI) Toggle(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "vote": gin.H{}, "detail": err.Error()})
		return
	}

	ctx := c.Request.Context()
	owner, err := a.persons.GetByID(ctx, req.User)
	if err != nil {
		serverError(c, a.logger, "vote", err)
		return
	}
	if owner == nil {
		c.JSON(StatusOf(ErrOwnerNotFound), gin.H{"success": false, "vote": gin.H{}, "detail": "Vote owner doesn't exist"})
		return
	}

	comment, err := a.comments.GetByID(ctx, req.Comment)
	if err != nil {
		serverError(c, a.logger, "vote", err)
		return
	}
	if comment == nil {
		c.JSON(StatusOf(ErrCommentNotFound), gin.H{"success": false, "vote": gin.H{}, "detail": "Vote comment doesn't exist"})
		return
	}

	created, vote, count, err := a.votes.Toggle(ctx, owner.ID, comment.ID)
	if err != nil {
		serverError(c, a.logger, "vote", err)
		return
	}
	a.cache.Delete(cache.CommentKey(comment.ID))

	status := http.StatusCreated
	detail := "Vote successfully created"
	if !created {
		status = http.StatusAccepted
		detail = "Vote successfully removed"
	}
	c.JSON(status, gin.H{"success": true, "vote": vote, "votes": count, "detail": detail})
}

// Delete handles DELETE /votes/:vote_id, echoing the deleted row
func (a *VoteAPI) Delete(c *gin.Context) {
	id, ok := pathID(c, "vote_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "vote": gin.H{}, "detail": "Invalid vote ID"})
		return
	}

	ctx := c.Request.Context()
	vote, err := a.votes.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "vote", err)
		return
	}
	if vote == nil {
		notFound := &EntityNotFoundError{Kind: "Vote", ID: id}
		c.JSON(StatusOf(notFound), gin.H{"success": false, "vote": gin.H{}, "detail": notFound.Error()})
		return
	}

	if err := a.votes.Delete(ctx, vote); err != nil {
		serverError(c, a.logger, "vote", err)
		return
	}
	a.cache.Delete(cache.CommentKey(vote.CommentID))

	c.JSON(http.StatusAccepted, gin.H{"success": true, "vote": vote, "detail": fmt.Sprintf("Vote %d deleted successfully", id)})
}
