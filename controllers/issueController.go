package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"civicconnect-be/models"
	"civicconnect-be/store"

	"github.com/gin-gonic/gin"
)

// IssueController exposes the issue store over HTTP.
type IssueController struct {
	Issues *store.IssueStore
	Users  *store.UserRegistry
}

func NewIssueController(issues *store.IssueStore, users *store.UserRegistry) *IssueController {
	return &IssueController{Issues: issues, Users: users}
}

func (ic *IssueController) sessionUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil, false
	}
	id, ok := userID.(string)
	if !ok {
		return nil, false
	}
	return ic.Users.GetByID(id)
}

// CreateIssue handles the creation of a new issue
func (ic *IssueController) CreateIssue(c *gin.Context) {
	user, ok := ic.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string              `json:"title" binding:"required,max=200"`
		Description string              `json:"description" binding:"required,max=1000"`
		Category    string              `json:"category" binding:"required"`
		Location    string              `json:"location" binding:"required,max=200"`
		Urgency     string              `json:"urgency" binding:"required"`
		Coordinates *models.Coordinates `json:"coordinates,omitempty"`
		Photos      []string            `json:"photos,omitempty"`
		Tags        []string            `json:"tags,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	urgency := models.IssueUrgency(input.Urgency)
	if !urgency.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid urgency"})
		return
	}

	issue := ic.Issues.AddIssue(store.NewIssue{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.StatusPending,
		Urgency:     urgency,
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Location:    input.Location,
		Coordinates: input.Coordinates,
		ReportedBy:  user.Name,
		ReportedAt:  time.Now(),
		Photos:      input.Photos,
		Tags:        input.Tags,
	})

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues handles retrieving all issues with filtering, pagination, and sorting
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	category := c.Query("category")
	status := c.Query("status")
	search := strings.ToLower(c.Query("search"))
	sortOrder := c.DefaultQuery("sort", "newest")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	issues := ic.Issues.Issues()

	filtered := make([]*models.Issue, 0, len(issues))
	for _, issue := range issues {
		if category != "" && category != "all" && issue.Category != category {
			continue
		}
		if status != "" && status != "all" && string(issue.Status) != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(issue.Title), search) &&
			!strings.Contains(strings.ToLower(issue.Description), search) {
			continue
		}
		filtered = append(filtered, issue)
	}

	// Store order is newest-first already.
	if sortOrder == "oldest" {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].ReportedAt.Before(filtered[j].ReportedAt)
		})
	}

	totalCount := len(filtered)
	totalPages := (totalCount + limit - 1) / limit
	start := (page - 1) * limit
	if start > totalCount {
		start = totalCount
	}
	end := start + limit
	if end > totalCount {
		end = totalCount
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      filtered[start:end],
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, ok := ic.Issues.GetIssueByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	c.JSON(http.StatusOK, issue)
}

// UpdateIssue merges the supplied fields into an issue. Admin only.
func (ic *IssueController) UpdateIssue(c *gin.Context) {
	id := c.Param("id")
	if _, ok := ic.Issues.GetIssueByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	var input struct {
		Title              *string             `json:"title,omitempty"`
		Description        *string             `json:"description,omitempty"`
		Category           *string             `json:"category,omitempty"`
		Location           *string             `json:"location,omitempty"`
		Status             *string             `json:"status,omitempty"`
		Urgency            *string             `json:"urgency,omitempty"`
		AssignedDepartment *string             `json:"assignedDepartment,omitempty"`
		Coordinates        *models.Coordinates `json:"coordinates,omitempty"`
		Photos             []string            `json:"photos,omitempty"`
		Tags               []string            `json:"tags,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := store.IssueUpdate{
		Title:              input.Title,
		Description:        input.Description,
		Category:           input.Category,
		Location:           input.Location,
		AssignedDepartment: input.AssignedDepartment,
		Coordinates:        input.Coordinates,
		Photos:             input.Photos,
		Tags:               input.Tags,
	}
	if input.Status != nil {
		status := models.IssueStatus(*input.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		updates.Status = &status
	}
	if input.Urgency != nil {
		urgency := models.IssueUrgency(*input.Urgency)
		if !urgency.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid urgency"})
			return
		}
		updates.Urgency = &urgency
	}

	ic.Issues.UpdateIssue(id, updates)

	issue, _ := ic.Issues.GetIssueByID(id)
	c.JSON(http.StatusOK, issue)
}

// HandleVoteOnIssue applies the toggle vote for the session user
func (ic *IssueController) HandleVoteOnIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	if _, ok := ic.Issues.GetIssueByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	var input struct {
		Vote string `json:"vote" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vote := models.VoteType(input.Vote)
	if !vote.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
		return
	}

	ic.Issues.VoteOnIssue(id, userID.(string), vote)

	issue, _ := ic.Issues.GetIssueByID(id)
	currentVote, voted := issue.UserVotes[userID.(string)]
	c.JSON(http.StatusOK, gin.H{
		"upvotes":   issue.Upvotes,
		"downvotes": issue.Downvotes,
		"voted":     voted,
		"userVote":  currentVote,
	})
}

// AddComment appends a comment by the session user to an issue
func (ic *IssueController) AddComment(c *gin.Context) {
	user, ok := ic.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	if _, ok := ic.Issues.GetIssueByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required,max=1000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ic.Issues.AddComment(id, store.NewComment{
		Author:     user.Name,
		Content:    input.Content,
		Timestamp:  time.Now(),
		IsOfficial: user.Role == models.RoleAdmin,
	})

	issue, _ := ic.Issues.GetIssueByID(id)
	c.JSON(http.StatusCreated, gin.H{"comments": issue.Comments})
}

// MapFeed returns the projection the map consumer renders: every issue that
// has coordinates, with its vote and comment tallies.
func (ic *IssueController) MapFeed(c *gin.Context) {
	type mapIssue struct {
		ID          string              `json:"id"`
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Status      models.IssueStatus  `json:"status"`
		Urgency     models.IssueUrgency `json:"urgency"`
		Category    string              `json:"category"`
		Location    string              `json:"location"`
		Coordinates *models.Coordinates `json:"coordinates"`
		Upvotes     int                 `json:"upvotes"`
		Comments    int                 `json:"comments"`
	}

	issues := ic.Issues.Issues()
	feed := make([]mapIssue, 0, len(issues))
	for _, issue := range issues {
		if issue.Coordinates == nil {
			continue
		}
		feed = append(feed, mapIssue{
			ID:          issue.ID,
			Title:       issue.Title,
			Description: issue.Description,
			Status:      issue.Status,
			Urgency:     issue.Urgency,
			Category:    issue.Category,
			Location:    issue.Location,
			Coordinates: issue.Coordinates,
			Upvotes:     issue.Upvotes,
			Comments:    len(issue.Comments),
		})
	}
	c.JSON(http.StatusOK, feed)
}

// GetIssueAnalytics returns analytical data about issues
func (ic *IssueController) GetIssueAnalytics(c *gin.Context) {
	issues := ic.Issues.Issues()

	categoryCounts := map[string]int{}
	totalVotes := 0
	openIssues := 0
	for _, issue := range issues {
		categoryCounts[issue.Category]++
		totalVotes += issue.Upvotes + issue.Downvotes
		if issue.Status == models.StatusPending || issue.Status == models.StatusInProgress {
			openIssues++
		}
	}

	issuesByCategory := make([]gin.H, 0, len(categoryCounts))
	for name, value := range categoryCounts {
		issuesByCategory = append(issuesByCategory, gin.H{"name": name, "value": value})
	}
	sort.Slice(issuesByCategory, func(i, j int) bool {
		return issuesByCategory[i]["name"].(string) < issuesByCategory[j]["name"].(string)
	})

	// Get last 7 days data
	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		count := 0
		for _, issue := range issues {
			if !issue.ReportedAt.Before(date) && issue.ReportedAt.Before(nextDate) {
				count++
			}
		}
		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	// Top voted issues
	type issueVotes struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
		Votes    int    `json:"votes"`
	}
	ranked := make([]issueVotes, 0, len(issues))
	for _, issue := range issues {
		ranked = append(ranked, issueVotes{
			ID:       issue.ID,
			Title:    issue.Title,
			Category: issue.Category,
			Votes:    issue.Upvotes,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"issuesByCategory": issuesByCategory,
		"last7Days":        last7Days,
		"topVotedIssues":   ranked,
		"totalIssues":      len(issues),
		"totalVotes":       totalVotes,
		"openIssues":       openIssues,
	})
}
