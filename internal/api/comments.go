package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forumhive/forum-api/internal/cache"
	"github.com/forumhive/forum-api/internal/db"
	"github.com/forumhive/forum-api/internal/models"
	"github.com/forumhive/forum-api/internal/query"
	"github.com/forumhive/forum-api/internal/tree"
	"github.com/forumhive/forum-api/pkg/logging"
)

// PartialCommentRequest is the payload for a partial comment update.
type PartialCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentRequest is the payload for comment creation and full updates.
type CommentRequest struct {
	User      int64  `json:"user" binding:"required"`
	Content   string `json:"content" binding:"required,min=1"`
	Parent    *int64 `json:"parent"`
	TopParent *int64 `json:"top_parent"`
}

// CommentAPI serves the /comments resource
type CommentAPI struct {
	comments *db.CommentRepository
	persons  *db.PersonRepository
	tree     *tree.Aggregator
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewCommentAPI creates a new comment API
func NewCommentAPI(comments *db.CommentRepository, persons *db.PersonRepository, aggregator *tree.Aggregator, redisCache *cache.Cache) *CommentAPI {
	return &CommentAPI{
		comments: comments,
		persons:  persons,
		tree:     aggregator,
		cache:    redisCache,
		logger:   logging.WithComponent("api-comments"),
	}
}

// Register attaches the comment routes to the group
func (a *CommentAPI) Register(g *gin.RouterGroup) {
	g.GET("", a.List)
	g.GET("/:comment_id", a.Get)
	g.GET("/:comment_id/children", a.Children)
	g.GET("/user/:user_id", a.ByUser)
	g.POST("", a.Create)
	g.PATCH("/:comment_id", a.Patch)
	g.PUT("/:comment_id", a.Put)
	g.DELETE("/:comment_id", a.Delete)
}

// List handles GET /comments with pagination and sorting
func (a *CommentAPI) List(c *gin.Context) {
	limit, offset, sort, pageErr := pageParams(c)

	order, err := query.ValidOrder(models.CommentSchema, sort)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comments": []models.Comment{}, "detail": invalidSortDetail})
		return
	}
	if pageErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comments": []models.Comment{}, "detail": invalidPageDetail})
		return
	}

	ctx := c.Request.Context()
	total, err := a.comments.Count(ctx)
	if err != nil {
		serverError(c, a.logger, "comments", err)
		return
	}
	comments, err := a.comments.List(ctx, order, limit, offset)
	if err != nil {
		serverError(c, a.logger, "comments", err)
		return
	}
	if len(comments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "comments": []models.Comment{}, "detail": "Not Found"})
		return
	}

	c.JSON(http.StatusOK, query.Envelope(c.Request.URL.Path, c.Request.URL.RawQuery, "comments", comments, total, limit, offset))
}

// Get handles GET /comments/:comment_id. The returned comment carries its
// vote count, direct-reply count and the owner's full name.
func (a *CommentAPI) Get(c *gin.Context) {
	id, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": "Invalid comment ID"})
		return
	}

	key := cache.CommentKey(id)
	if cached, err := a.cache.Get(key); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	row, err := a.tree.Detail(c.Request.Context(), id)
	if err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "comment": gin.H{}, "detail": "Not Found"})
		return
	}

	data := gin.H{"success": true, "comment": row}
	if encoded, err := json.Marshal(data); err == nil {
		if err := a.cache.Set(key, encoded, cache.DetailTTL); err != nil && err != cache.ErrCacheDisabled {
			a.logger.Warn("failed to cache comment detail", zap.Int64("comment_id", id), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, data)
}

// Children handles GET /comments/:comment_id/children. With deep=false only
// immediate replies are returned; deep=true returns every descendant of the
// comment via the top_parent shortcut.
func (a *CommentAPI) Children(c *gin.Context) {
	id, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comments": []tree.Row{}, "detail": "Invalid comment ID"})
		return
	}

	deep, err := strconv.ParseBool(c.DefaultQuery("deep", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comments": []tree.Row{}, "detail": "Invalid value: deep must be a boolean"})
		return
	}

	order, err := query.ValidOrder(models.CommentSchema, c.DefaultQuery("sort", defaultSort))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comments": []tree.Row{}, "detail": invalidSortDetail})
		return
	}

	ctx := c.Request.Context()
	comment, err := a.comments.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "comments", err)
		return
	}
	if comment == nil {
		notFound := &EntityNotFoundError{Kind: "Comment", ID: id}
		c.JSON(StatusOf(notFound), gin.H{"success": false, "comments": []tree.Row{}, "detail": notFound.Error()})
		return
	}

	rows, err := a.tree.Children(ctx, id, order, deep)
	if err != nil {
		serverError(c, a.logger, "comments", err)
		return
	}
	if rows == nil {
		rows = []tree.Row{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comments": rows})
}

// ByUser handles GET /comments/user/:user_id
func (a *CommentAPI) ByUser(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comments": []models.Comment{}, "detail": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	person, err := a.persons.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "comments", err)
		return
	}
	if person == nil {
		c.JSON(StatusOf(ErrOwnerNotFound), gin.H{"success": false, "comments": []models.Comment{}, "detail": "Comment owner doesn't exist"})
		return
	}

	comments, err := a.comments.ListByUser(ctx, id)
	if err != nil {
		serverError(c, a.logger, "comments", err)
		return
	}
	if len(comments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "comments": []models.Comment{}, "detail": "Not Found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

// Create handles POST /comments
func (a *CommentAPI) Create(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": err.Error()})
		return
	}

	content := query.NormalizeSpaces(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": "content must contain at least 1 character"})
		return
	}

	ctx := c.Request.Context()
	owner, err := a.persons.GetByID(ctx, req.User)
	if err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	if owner == nil {
		c.JSON(StatusOf(ErrOwnerNotFound), gin.H{"success": false, "comment": gin.H{}, "detail": "Comment owner doesn't exist"})
		return
	}

	comment := models.Comment{
		UserID:   owner.ID,
		Content:  content,
		ParentID: req.Parent,
	}

	if req.Parent != nil {
		// top_parent always derives from the parent chain, even when the
		// client supplies one
		topParent, err := a.comments.ResolveTopParent(ctx, *req.Parent)
		if errors.Is(err, db.ErrParentNotFound) {
			c.JSON(StatusOf(ErrCommentNotFound), gin.H{"success": false, "comment": gin.H{}, "detail": "Parent comment doesn't exist"})
			return
		}
		if err != nil {
			serverError(c, a.logger, "comment", err)
			return
		}
		comment.TopParentID = &topParent
	}

	if err := a.comments.Create(ctx, &comment); err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	a.invalidate(comment.ParentID, comment.TopParentID)

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment, "detail": "Comment successfully created"})
}

// Patch handles PATCH /comments/:comment_id, updating only the content
func (a *CommentAPI) Patch(c *gin.Context) {
	id, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": "Invalid comment ID"})
		return
	}

	var req PartialCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": err.Error()})
		return
	}

	content := query.NormalizeSpaces(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": "content must contain at least 1 character"})
		return
	}

	ctx := c.Request.Context()
	comment, err := a.comments.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	if comment == nil {
		notFound := &EntityNotFoundError{Kind: "Comment", ID: id}
		c.JSON(StatusOf(notFound), gin.H{"success": false, "comment": gin.H{}, "detail": notFound.Error()})
		return
	}

	comment.Content = content
	if err := a.comments.Update(ctx, comment); err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	a.invalidateComment(comment)

	c.JSON(http.StatusAccepted, gin.H{"success": true, "comment": comment, "detail": "Comment successfully patched"})
}

// Put handles PUT /comments/:comment_id with a complete payload, including a
// valid owner reference. Reparenting recomputes top_parent from the new
// parent chain.
func (a *CommentAPI) Put(c *gin.Context) {
	id, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": "Invalid comment ID"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": err.Error()})
		return
	}

	content := query.NormalizeSpaces(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": "content must contain at least 1 character"})
		return
	}

	ctx := c.Request.Context()
	comment, err := a.comments.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	if comment == nil {
		notFound := &EntityNotFoundError{Kind: "Comment", ID: id}
		c.JSON(StatusOf(notFound), gin.H{"success": false, "comment": gin.H{}, "detail": notFound.Error()})
		return
	}

	owner, err := a.persons.GetByID(ctx, req.User)
	if err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	if owner == nil {
		c.JSON(StatusOf(ErrOwnerNotFound), gin.H{"success": false, "comment": gin.H{}, "detail": "Comment owner doesn't exist"})
		return
	}

	comment.UserID = owner.ID
	comment.Content = content
	comment.ParentID = req.Parent
	comment.TopParentID = nil
	if req.Parent != nil {
		topParent, err := a.comments.ResolveTopParent(ctx, *req.Parent)
		if errors.Is(err, db.ErrParentNotFound) {
			c.JSON(StatusOf(ErrCommentNotFound), gin.H{"success": false, "comment": gin.H{}, "detail": "Parent comment doesn't exist"})
			return
		}
		if err != nil {
			serverError(c, a.logger, "comment", err)
			return
		}
		comment.TopParentID = &topParent
	}

	if err := a.comments.Update(ctx, comment); err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	a.invalidateComment(comment)

	c.JSON(http.StatusAccepted, gin.H{"success": true, "comment": comment, "detail": "Comment successfully updated"})
}

// Delete handles DELETE /comments/:comment_id, echoing the deleted row
func (a *CommentAPI) Delete(c *gin.Context) {
	id, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "comment": gin.H{}, "detail": "Invalid comment ID"})
		return
	}

	ctx := c.Request.Context()
	comment, err := a.comments.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	if comment == nil {
		notFound := &EntityNotFoundError{Kind: "Comment", ID: id}
		c.JSON(StatusOf(notFound), gin.H{"success": false, "comment": gin.H{}, "detail": notFound.Error()})
		return
	}

	if err := a.comments.Delete(ctx, comment); err != nil {
		serverError(c, a.logger, "comment", err)
		return
	}
	a.invalidateComment(comment)

	c.JSON(http.StatusAccepted, gin.H{"success": true, "comment": comment, "detail": fmt.Sprintf("Comment %d deleted successfully", id)})
}

// invalidateComment drops the cached detail of the comment and of the
// ancestors whose reply counts it affects.
func (a *CommentAPI) invalidateComment(comment *models.Comment) {
	a.cache.Delete(cache.CommentKey(comment.ID))
	a.invalidate(comment.ParentID, comment.TopParentID)
}

func (a *CommentAPI) invalidate(ids ...*int64) {
	for _, id := range ids {
		if id != nil {
			a.cache.Delete(cache.CommentKey(*id))
		}
	}
}
