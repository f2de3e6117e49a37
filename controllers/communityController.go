package controllers

import (
	"net/http"
	"time"

	"civicconnect-be/models"
	"civicconnect-be/store"

	"github.com/gin-gonic/gin"
)

// CommunityController exposes the community store over HTTP.
type CommunityController struct {
	Communities *store.CommunityStore
	Users       *store.UserRegistry
}

func NewCommunityController(communities *store.CommunityStore, users *store.UserRegistry) *CommunityController {
	return &CommunityController{Communities: communities, Users: users}
}

func (cc *CommunityController) sessionUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil, false
	}
	id, ok := userID.(string)
	if !ok {
		return nil, false
	}
	return cc.Users.GetByID(id)
}

// CreateCommunity handles the creation of a new community
func (cc *CommunityController) CreateCommunity(c *gin.Context) {
	user, ok := cc.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=100"`
		Description string   `json:"description" binding:"required,max=500"`
		Category    string   `json:"category" binding:"required"`
		Region      string   `json:"region" binding:"required"`
		Rules       []string `json:"rules,omitempty"`
		Tags        []string `json:"tags,omitempty"`
		IsPrivate   bool     `json:"isPrivate"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	community := cc.Communities.AddCommunity(store.NewCommunity{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Region:      input.Region,
		Members:     []string{user.ID},
		Moderator:   user.Name,
		CreatedAt:   time.Now(),
		Rules:       input.Rules,
		Tags:        input.Tags,
		IsPrivate:   input.IsPrivate,
	})

	c.JSON(http.StatusCreated, community)
}

// GetAllCommunities returns the whole collection
func (cc *CommunityController) GetAllCommunities(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Communities.Communities())
}

// GetTrendingCommunities returns the curated trending set
func (cc *CommunityController) GetTrendingCommunities(c *gin.Context) {
	trending := cc.Communities.GetTrendingCommunities()
	if trending == nil {
		trending = []*models.Community{}
	}
	c.JSON(http.StatusOK, trending)
}

// SearchCommunities matches q against titles, descriptions, and tags
func (cc *CommunityController) SearchCommunities(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter q"})
		return
	}
	results := cc.Communities.SearchCommunities(query)
	if results == nil {
		results = []*models.Community{}
	}
	c.JSON(http.StatusOK, results)
}

// GetUserMemberships returns the session user's communities
func (cc *CommunityController) GetUserMemberships(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"communities":  cc.Communities.GetUserMemberships(),
		"joinRequests": cc.Communities.JoinRequestIDs(),
	})
}

// GetCommunity retrieves a community by its ID
func (cc *CommunityController) GetCommunity(c *gin.Context) {
	community, ok := cc.Communities.GetCommunityByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}
	c.JSON(http.StatusOK, community)
}

// UpdateCommunity merges the supplied fields into a community
func (cc *CommunityController) UpdateCommunity(c *gin.Context) {
	id := c.Param("id")
	if _, ok := cc.Communities.GetCommunityByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}

	var input struct {
		Title       *string  `json:"title,omitempty"`
		Description *string  `json:"description,omitempty"`
		Category    *string  `json:"category,omitempty"`
		Region      *string  `json:"region,omitempty"`
		Trending    *bool    `json:"trending,omitempty"`
		Moderator   *string  `json:"moderator,omitempty"`
		Rules       []string `json:"rules,omitempty"`
		Tags        []string `json:"tags,omitempty"`
		IsPrivate   *bool    `json:"isPrivate,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cc.Communities.UpdateCommunity(id, store.CommunityUpdate{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Region:      input.Region,
		Trending:    input.Trending,
		Moderator:   input.Moderator,
		Rules:       input.Rules,
		Tags:        input.Tags,
		IsPrivate:   input.IsPrivate,
	})

	community, _ := cc.Communities.GetCommunityByID(id)
	c.JSON(http.StatusOK, community)
}

// DeleteCommunity removes a community
func (cc *CommunityController) DeleteCommunity(c *gin.Context) {
	id := c.Param("id")
	if _, ok := cc.Communities.GetCommunityByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}
	cc.Communities.DeleteCommunity(id)
	c.JSON(http.StatusOK, gin.H{"message": "Community deleted successfully"})
}

// JoinCommunity adds the session user to a community. Private communities
// get a pending join request instead; membership there needs moderator
// approval.
func (cc *CommunityController) JoinCommunity(c *gin.Context) {
	user, ok := cc.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	community, found := cc.Communities.GetCommunityByID(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}

	if community.IsPrivate {
		cc.Communities.RequestToJoinCommunity(id, user.ID)
		c.JSON(http.StatusAccepted, gin.H{
			"message":   "Join request submitted",
			"requested": true,
		})
		return
	}

	cc.Communities.JoinCommunity(id, user.ID)
	community, _ = cc.Communities.GetCommunityByID(id)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Joined community",
		"memberCount": community.MemberCount,
	})
}

// LeaveCommunity removes the session user from a community
func (cc *CommunityController) LeaveCommunity(c *gin.Context) {
	user, ok := cc.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	if _, found := cc.Communities.GetCommunityByID(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}

	cc.Communities.LeaveCommunity(id, user.ID)
	community, _ := cc.Communities.GetCommunityByID(id)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Left community",
		"memberCount": community.MemberCount,
	})
}

// RequestToJoin records a pending join request for the session user
func (cc *CommunityController) RequestToJoin(c *gin.Context) {
	user, ok := cc.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("id")
	if _, found := cc.Communities.GetCommunityByID(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}

	cc.Communities.RequestToJoinCommunity(id, user.ID)
	c.JSON(http.StatusAccepted, gin.H{"message": "Join request submitted"})
}

// ApproveJoinRequest promotes a pending requester to member. Admin only.
func (cc *CommunityController) ApproveJoinRequest(c *gin.Context) {
	id := c.Param("id")
	if _, found := cc.Communities.GetCommunityByID(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}

	var input struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cc.Communities.ApproveJoinRequest(id, input.UserID)
	c.JSON(http.StatusOK, gin.H{"message": "Join request approved"})
}

// RejectJoinRequest drops a pending request. Admin only.
func (cc *CommunityController) RejectJoinRequest(c *gin.Context) {
	id := c.Param("id")
	if _, found := cc.Communities.GetCommunityByID(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}

	var input struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cc.Communities.RejectJoinRequest(id, input.UserID)
	c.JSON(http.StatusOK, gin.H{"message": "Join request rejected"})
}

// GetDiscussions lists a community's posts in insertion order
func (cc *CommunityController) GetDiscussions(c *gin.Context) {
	id := c.Param("id")
	if _, found := cc.Communities.GetCommunityByID(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}
	c.JSON(http.StatusOK, cc.Communities.GetDiscussionsByCommunity(id))
}

// CreateDiscussion adds a post to a community by the session user
func (cc *CommunityController) CreateDiscussion(c *gin.Context) {
	user, ok := cc.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title    string   `json:"title" binding:"required,max=200"`
		Content  string   `json:"content" binding:"required,max=5000"`
		Tags     []string `json:"tags,omitempty"`
		IsPinned bool     `json:"isPinned"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	discussion := cc.Communities.AddDiscussion(store.NewDiscussion{
		CommunityID: c.Param("id"),
		Title:       input.Title,
		Content:     input.Content,
		Author:      user.Name,
		AuthorID:    user.ID,
		Tags:        input.Tags,
		IsPinned:    input.IsPinned,
	})
	if discussion == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}
	c.JSON(http.StatusCreated, discussion)
}

// GetDiscussion retrieves a discussion by id from whichever community owns it
func (cc *CommunityController) GetDiscussion(c *gin.Context) {
	discussion, ok := cc.Communities.GetDiscussionByID(c.Param("discussionId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discussion not found"})
		return
	}
	c.JSON(http.StatusOK, discussion)
}

// UpdateDiscussion merges the supplied fields into a discussion
func (cc *CommunityController) UpdateDiscussion(c *gin.Context) {
	id := c.Param("discussionId")
	if _, ok := cc.Communities.GetDiscussionByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discussion not found"})
		return
	}

	var input struct {
		Title    *string  `json:"title,omitempty"`
		Content  *string  `json:"content,omitempty"`
		Tags     []string `json:"tags,omitempty"`
		IsPinned *bool    `json:"isPinned,omitempty"`
		IsLocked *bool    `json:"isLocked,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cc.Communities.UpdateDiscussion(id, store.DiscussionUpdate{
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		IsPinned: input.IsPinned,
		IsLocked: input.IsLocked,
	})

	discussion, _ := cc.Communities.GetDiscussionByID(id)
	c.JSON(http.StatusOK, discussion)
}

// DeleteDiscussion removes a discussion from its owning community
func (cc *CommunityController) DeleteDiscussion(c *gin.Context) {
	id := c.Param("discussionId")
	if _, ok := cc.Communities.GetDiscussionByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discussion not found"})
		return
	}
	cc.Communities.DeleteDiscussion(id)
	c.JSON(http.StatusOK, gin.H{"message": "Discussion deleted successfully"})
}

// CreateReply adds a reply by the session user to a discussion
func (cc *CommunityController) CreateReply(c *gin.Context) {
	user, ok := cc.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Content       string `json:"content" binding:"required,max=2000"`
		ParentReplyID string `json:"parentReplyId,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := cc.Communities.AddReply(store.NewReply{
		DiscussionID:  c.Param("discussionId"),
		Content:       input.Content,
		Author:        user.Name,
		AuthorID:      user.ID,
		ParentReplyID: input.ParentReplyID,
	})
	if reply == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discussion not found"})
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// UpdateReply rewrites a reply's content
func (cc *CommunityController) UpdateReply(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cc.Communities.UpdateReply(c.Param("replyId"), input.Content)
	c.JSON(http.StatusOK, gin.H{"message": "Reply updated successfully"})
}

// DeleteReply removes a reply
func (cc *CommunityController) DeleteReply(c *gin.Context) {
	cc.Communities.DeleteReply(c.Param("replyId"))
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}

// LikeDiscussion records the session user's like on a discussion
func (cc *CommunityController) LikeDiscussion(c *gin.Context) {
	cc.discussionInteraction(c, cc.Communities.LikeDiscussion)
}

// UnlikeDiscussion removes the session user's like from a discussion
func (cc *CommunityController) UnlikeDiscussion(c *gin.Context) {
	cc.discussionInteraction(c, cc.Communities.UnlikeDiscussion)
}

// ViewDiscussion records a view; repeat views never inflate the count
func (cc *CommunityController) ViewDiscussion(c *gin.Context) {
	cc.discussionInteraction(c, cc.Communities.ViewDiscussion)
}

func (cc *CommunityController) discussionInteraction(c *gin.Context, apply func(discussionID, userID string)) {
	user, ok := cc.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id := c.Param("discussionId")
	if _, found := cc.Communities.GetDiscussionByID(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discussion not found"})
		return
	}

	apply(id, user.ID)
	discussion, _ := cc.Communities.GetDiscussionByID(id)
	c.JSON(http.StatusOK, gin.H{
		"likeCount": discussion.LikeCount,
		"viewCount": discussion.ViewCount,
	})
}

// LikeReply records the session user's like on a reply
func (cc *CommunityController) LikeReply(c *gin.Context) {
	cc.replyInteraction(c, cc.Communities.LikeReply)
}

// UnlikeReply removes the session user's like from a reply
func (cc *CommunityController) UnlikeReply(c *gin.Context) {
	cc.replyInteraction(c, cc.Communities.UnlikeReply)
}

func (cc *CommunityController) replyInteraction(c *gin.Context, apply func(replyID, userID string)) {
	user, ok := cc.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	apply(c.Param("replyId"), user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
