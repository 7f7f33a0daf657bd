package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forumhive/forum-api/internal/db"
	"github.com/forumhive/forum-api/internal/models"
	"github.com/forumhive/forum-api/internal/query"
	"github.com/forumhive/forum-api/pkg/logging"
)

// PartialUserRequest is the payload for a partial user update.
type PartialUserRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Avatar    *string `json:"avatar" binding:"omitempty,url"`
	Company   *string `json:"company"`
	Job       *string `json:"job"`
}

// normalize collapses whitespace in the text fields and re-checks the length
// bounds on the collapsed values, which are what gets persisted. Binding tags
// alone would let padded input slip under the bound.
func (r *PartialUserRequest) normalize() error {
	r.FirstName = query.NormalizeSpaces(r.FirstName)
	r.LastName = query.NormalizeSpaces(r.LastName)
	r.Company = normalizeOptional(r.Company)
	r.Job = normalizeOptional(r.Job)

	if err := boundedField("first_name", r.FirstName); err != nil {
		return err
	}
	if err := boundedField("last_name", r.LastName); err != nil {
		return err
	}
	if err := boundedOptional("company", r.Company); err != nil {
		return err
	}
	return boundedOptional("job", r.Job)
}

// apply merges the supplied fields into the person.
func (r *PartialUserRequest) apply(person *models.Person) {
	person.FirstName = r.FirstName
	person.LastName = r.LastName
	email := r.Email
	person.Email = &email
	person.Avatar = r.Avatar
	person.Company = r.Company
	person.Job = r.Job
}

// UserRequest is the payload for user creation and full updates.
type UserRequest struct {
	PartialUserRequest
	IsAdmin        bool          `json:"is_admin"`
	Gender         models.Gender `json:"gender" binding:"required,oneof=Male Female Other"`
	DateOfBirth    string        `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	CountryOfBirth string        `json:"country_of_birth" binding:"required"`
}

func (r *UserRequest) normalize() error {
	if err := r.PartialUserRequest.normalize(); err != nil {
		return err
	}
	r.CountryOfBirth = query.NormalizeSpaces(r.CountryOfBirth)
	return boundedField("country_of_birth", r.CountryOfBirth)
}

func (r *UserRequest) apply(person *models.Person) {
	r.PartialUserRequest.apply(person)
	person.IsAdmin = r.IsAdmin
	person.Gender = r.Gender
	person.CountryOfBirth = r.CountryOfBirth
	// format already validated by the binding tag
	person.DateOfBirth, _ = time.Parse("2006-01-02", r.DateOfBirth)
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	normalized := query.NormalizeSpaces(*s)
	return &normalized
}

func boundedField(name, value string) error {
	if n := utf8.RuneCountInString(value); n < 3 || n > 50 {
		return fmt.Errorf("%s must be between 3 and 50 characters", name)
	}
	return nil
}

func boundedOptional(name string, value *string) error {
	if value == nil {
		return nil
	}
	return boundedField(name, *value)
}

// UserAPI serves the /users resource
type UserAPI struct {
	repo   *db.PersonRepository
	logger *zap.Logger
}

// NewUserAPI creates a new user API
func NewUserAPI(repo *db.PersonRepository) *UserAPI {
	return &UserAPI{
		repo:   repo,
		logger: logging.WithComponent("api-users"),
	}
}

// Register attaches the user routes to the group
func (a *UserAPI) Register(g *gin.RouterGroup) {
	g.GET("", a.List)
	g.GET("/:user_id", a.Get)
	g.GET("/filter/:attribute/:value", a.Filter)
	g.POST("", a.Create)
	g.PATCH("/:user_id", a.Patch)
	g.PUT("/:user_id", a.Put)
	g.DELETE("/:user_id", a.Delete)
}

// List handles GET /users with pagination and sorting
func (a *UserAPI) List(c *gin.Context) {
	limit, offset, sort, pageErr := pageParams(c)

	order, err := query.ValidOrder(models.PersonSchema, sort)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "users": []models.Person{}, "detail": invalidSortDetail})
		return
	}
	if pageErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "users": []models.Person{}, "detail": invalidPageDetail})
		return
	}

	ctx := c.Request.Context()
	total, err := a.repo.Count(ctx)
	if err != nil {
		serverError(c, a.logger, "users", err)
		return
	}
	users, err := a.repo.List(ctx, order, limit, offset)
	if err != nil {
		serverError(c, a.logger, "users", err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "users": []models.Person{}, "detail": "Not Found"})
		return
	}

	c.JSON(http.StatusOK, query.Envelope(c.Request.URL.Path, c.Request.URL.RawQuery, "users", users, total, limit, offset))
}

// Get handles GET /users/:user_id
func (a *UserAPI) Get(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": "Invalid user ID"})
		return
	}

	user, err := a.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		serverError(c, a.logger, "user", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "user": gin.H{}, "detail": "Not Found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Filter handles GET /users/filter/:attribute/:value. The attribute may
// combine fields with And/Or, e.g. idOremail or genderAndcountry_of_birth.
func (a *UserAPI) Filter(c *gin.Context) {
	terms, err := query.ParseFilter(models.PersonSchema, c.Param("attribute"))
	if err != nil {
		attrs := query.Attributes(models.PersonSchema, query.AttributeOptions{})
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"users":   []models.Person{},
			"detail":  fmt.Sprintf("Invalid attribute filter. Try with: %s", strings.Join(attrs, ", ")),
		})
		return
	}

	users, err := a.repo.FilterByAttributes(c.Request.Context(), terms, c.Param("value"))
	if err != nil {
		serverError(c, a.logger, "users", err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "users": []models.Person{}, "detail": "Not Found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// Create handles POST /users
func (a *UserAPI) Create(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": err.Error()})
		return
	}
	if err := req.normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": err.Error()})
		return
	}

	var user models.Person
	req.apply(&user)

	if err := a.repo.Create(c.Request.Context(), &user); err != nil {
		serverError(c, a.logger, "user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user, "detail": "User successfully created"})
}

// Patch handles PATCH /users/:user_id, merging only the supplied fields
func (a *UserAPI) Patch(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": "Invalid user ID"})
		return
	}

	var req PartialUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": err.Error()})
		return
	}
	if err := req.normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := a.repo.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "user", err)
		return
	}
	if user == nil {
		notFound := &EntityNotFoundError{Kind: "User", ID: id}
		c.JSON(StatusOf(notFound), gin.H{"success": false, "user": gin.H{}, "detail": notFound.Error()})
		return
	}

	req.apply(user)
	if err := a.repo.Update(ctx, user); err != nil {
		serverError(c, a.logger, "user", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true, "user": user, "detail": "User successfully patched"})
}

// Put handles PUT /users/:user_id with a complete payload
func (a *UserAPI) Put(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": "Invalid user ID"})
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": err.Error()})
		return
	}
	if err := req.normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := a.repo.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "user", err)
		return
	}
	if user == nil {
		notFound := &EntityNotFoundError{Kind: "User", ID: id}
		c.JSON(StatusOf(notFound), gin.H{"success": false, "user": gin.H{}, "detail": notFound.Error()})
		return
	}

	req.apply(user)
	if err := a.repo.Update(ctx, user); err != nil {
		serverError(c, a.logger, "user", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true, "user": user, "detail": "User successfully updated"})
}

// Delete handles DELETE /users/:user_id, echoing the deleted row
func (a *UserAPI) Delete(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": gin.H{}, "detail": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	user, err := a.repo.GetByID(ctx, id)
	if err != nil {
		serverError(c, a.logger, "user", err)
		return
	}
	if user == nil {
		notFound := &EntityNotFoundError{Kind: "User", ID: id}
		c.JSON(StatusOf(notFound), gin.H{"success": false, "user": gin.H{}, "detail": notFound.Error()})
		return
	}

	if err := a.repo.Delete(ctx, user); err != nil {
		serverError(c, a.logger, "user", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true, "user": user, "detail": fmt.Sprintf("User %d deleted successfully", id)})
}
