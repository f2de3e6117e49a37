package store

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"civicconnect-be/models"
	"civicconnect-be/persist"
)

// CommunitiesSnapshotKey is the blob key the community store persists under.
const CommunitiesSnapshotKey = "civic-connect-communities"

// CommunityStore is the authoritative collection of communities with their
// nested discussions and replies, plus the current session user's membership
// and join-request caches. The per-community members list is the source of
// truth for who belongs to a community; the global lists are a fast lookup
// for the session user and are updated in the same operation as the
// per-community state.
//
// Discussions and replies are located through id indexes maintained on
// insert and delete, so nested lookups do not rescan every community.
type CommunityStore struct {
	mu               sync.Mutex
	snap             persist.Snapshotter
	communities      []*models.Community
	userMemberships  []string
	userJoinRequests []string

	discussionIndex map[string]string // discussion id -> community id
	replyIndex      map[string]string // reply id -> discussion id

	ids idSource
}

type communitySnapshot struct {
	Communities      []*models.Community `json:"communities"`
	UserMemberships  []string            `json:"userMemberships"`
	UserJoinRequests []string            `json:"userJoinRequests"`
}

// NewCommunity carries the caller-supplied fields of a community. The store
// assigns the id and derives the initial member count from Members.
type NewCommunity struct {
	Title       string
	Description string
	Category    string
	Region      string
	Members     []string
	Trending    bool
	Moderator   string
	CreatedAt   time.Time
	Rules       []string
	Tags        []string
	IsPrivate   bool
}

// CommunityUpdate is a partial update; nil fields are left untouched.
type CommunityUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Region      *string
	Trending    *bool
	Moderator   *string
	Rules       []string
	Tags        []string
	IsPrivate   *bool
}

// NewDiscussion carries the caller-supplied fields of a discussion.
type NewDiscussion struct {
	CommunityID string
	Title       string
	Content     string
	Author      string
	AuthorID    string
	Tags        []string
	IsPinned    bool
	IsLocked    bool
}

// DiscussionUpdate is a partial update; nil fields are left untouched.
type DiscussionUpdate struct {
	Title    *string
	Content  *string
	Tags     []string
	IsPinned *bool
	IsLocked *bool
}

// NewReply carries the caller-supplied fields of a reply.
type NewReply struct {
	DiscussionID  string
	Content       string
	Author        string
	AuthorID      string
	ParentReplyID string
}

// NewCommunityStore loads the persisted snapshot, or the seed dataset when
// no snapshot exists yet.
func NewCommunityStore(snap persist.Snapshotter) (*CommunityStore, error) {
	s := &CommunityStore{snap: snap}

	blob, ok, err := snap.Load(context.Background(), CommunitiesSnapshotKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.communities = seedCommunities()
		s.userMemberships = seedUserMemberships()
		s.userJoinRequests = []string{}
	} else {
		var snapData communitySnapshot
		if err := json.Unmarshal(blob, &snapData); err != nil {
			return nil, err
		}
		s.communities = snapData.Communities
		s.userMemberships = snapData.UserMemberships
		s.userJoinRequests = snapData.UserJoinRequests
	}
	s.rebuildIndexesLocked()
	return s, nil
}

// AddCommunity creates a community with a fresh id, an empty post list, and
// a member count matching the supplied initial members. Returns a copy of
// the stored community.
func (s *CommunityStore) AddCommunity(data NewCommunity) *models.Community {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := &models.Community{
		ID:           s.ids.next(),
		Title:        data.Title,
		Description:  data.Description,
		Category:     data.Category,
		Region:       data.Region,
		Members:      append([]string(nil), data.Members...),
		MemberCount:  len(data.Members),
		Posts:        []models.Discussion{},
		PostCount:    0,
		LastActivity: data.CreatedAt,
		Trending:     data.Trending,
		Moderator:    data.Moderator,
		CreatedAt:    data.CreatedAt,
		Rules:        append([]string(nil), data.Rules...),
		Tags:         append([]string(nil), data.Tags...),
		IsPrivate:    data.IsPrivate,
		JoinRequests: []string{},
	}
	s.communities = append(s.communities, community)
	s.persistLocked()
	return community.Clone()
}

// UpdateCommunity merges the given fields into the matching community.
// Unknown ids are a silent no-op.
func (s *CommunityStore) UpdateCommunity(id string, updates CommunityUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(id)
	if community == nil {
		return
	}
	if updates.Title != nil {
		community.Title = *updates.Title
	}
	if updates.Description != nil {
		community.Description = *updates.Description
	}
	if updates.Category != nil {
		community.Category = *updates.Category
	}
	if updates.Region != nil {
		community.Region = *updates.Region
	}
	if updates.Trending != nil {
		community.Trending = *updates.Trending
	}
	if updates.Moderator != nil {
		community.Moderator = *updates.Moderator
	}
	if updates.Rules != nil {
		community.Rules = append([]string(nil), updates.Rules...)
	}
	if updates.Tags != nil {
		community.Tags = append([]string(nil), updates.Tags...)
	}
	if updates.IsPrivate != nil {
		community.IsPrivate = *updates.IsPrivate
	}
	s.persistLocked()
}

// DeleteCommunity removes the community and drops its discussions and
// replies from the id indexes. Unknown ids are a silent no-op.
func (s *CommunityStore) DeleteCommunity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, community := range s.communities {
		if community.ID != id {
			continue
		}
		for _, post := range community.Posts {
			delete(s.discussionIndex, post.ID)
			for _, reply := range post.Replies {
				delete(s.replyIndex, reply.ID)
			}
		}
		s.communities = append(s.communities[:i], s.communities[i+1:]...)
		s.persistLocked()
		return
	}
}

// JoinCommunity adds the user to the community's members, clears any pending
// join request for that user, and records the membership in the session
// user's cache. Already-members and unknown communities are no-ops.
func (s *CommunityStore) JoinCommunity(communityID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(communityID)
	if community == nil {
		return
	}
	s.joinLocked(community, userID)
	s.persistLocked()
}

func (s *CommunityStore) joinLocked(community *models.Community, userID string) {
	if !contains(community.Members, userID) {
		community.Members = append(community.Members, userID)
		community.MemberCount++
	}
	community.JoinRequests = remove(community.JoinRequests, userID)

	if !contains(s.userMemberships, community.ID) {
		s.userMemberships = append(s.userMemberships, community.ID)
	}
	s.userJoinRequests = remove(s.userJoinRequests, community.ID)
}

// LeaveCommunity is the inverse of JoinCommunity. Leaving a community the
// user is not a member of leaves the member count untouched.
func (s *CommunityStore) LeaveCommunity(communityID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(communityID)
	if community == nil {
		return
	}
	if contains(community.Members, userID) {
		community.Members = remove(community.Members, userID)
		if community.MemberCount > 0 {
			community.MemberCount--
		}
	}
	s.userMemberships = remove(s.userMemberships, communityID)
	s.persistLocked()
}

// RequestToJoinCommunity records a pending join request for the user on the
// community and in the session user's cache. Duplicate requests are no-ops.
func (s *CommunityStore) RequestToJoinCommunity(communityID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(communityID)
	if community == nil {
		return
	}
	if !contains(community.JoinRequests, userID) {
		community.JoinRequests = append(community.JoinRequests, userID)
	}
	if !contains(s.userJoinRequests, communityID) {
		s.userJoinRequests = append(s.userJoinRequests, communityID)
	}
	s.persistLocked()
}

// ApproveJoinRequest promotes a pending requester to member.
func (s *CommunityStore) ApproveJoinRequest(communityID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(communityID)
	if community == nil {
		return
	}
	s.joinLocked(community, userID)
	s.persistLocked()
}

// RejectJoinRequest drops the pending request without granting membership.
func (s *CommunityStore) RejectJoinRequest(communityID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(communityID)
	if community == nil {
		return
	}
	community.JoinRequests = remove(community.JoinRequests, userID)
	s.userJoinRequests = remove(s.userJoinRequests, communityID)
	s.persistLocked()
}

// AddDiscussion creates a discussion with a fresh id and empty reply, like,
// and view sets, appends it to the owning community's posts, and bumps that
// community's post count and activity marker. Returns a copy of the stored
// discussion, or nil when the community does not exist.
func (s *CommunityStore) AddDiscussion(data NewDiscussion) *models.Discussion {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(data.CommunityID)
	if community == nil {
		return nil
	}

	now := time.Now()
	discussion := models.Discussion{
		ID:          s.ids.next(),
		CommunityID: data.CommunityID,
		Title:       data.Title,
		Content:     data.Content,
		Author:      data.Author,
		AuthorID:    data.AuthorID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Replies:     []models.Reply{},
		ReplyCount:  0,
		Likes:       []string{},
		LikeCount:   0,
		Views:       []string{},
		ViewCount:   0,
		Tags:        append([]string(nil), data.Tags...),
		IsPinned:    data.IsPinned,
		IsLocked:    data.IsLocked,
	}
	community.Posts = append(community.Posts, discussion)
	community.PostCount++
	community.LastActivity = now
	s.discussionIndex[discussion.ID] = community.ID
	s.persistLocked()
	return discussion.Clone()
}

// UpdateDiscussion merges the given fields into the matching discussion and
// refreshes its updated-at stamp. Unknown ids are a silent no-op.
func (s *CommunityStore) UpdateDiscussion(id string, updates DiscussionUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	discussion := s.discussionLocked(id)
	if discussion == nil {
		return
	}
	if updates.Title != nil {
		discussion.Title = *updates.Title
	}
	if updates.Content != nil {
		discussion.Content = *updates.Content
	}
	if updates.Tags != nil {
		discussion.Tags = append([]string(nil), updates.Tags...)
	}
	if updates.IsPinned != nil {
		discussion.IsPinned = *updates.IsPinned
	}
	if updates.IsLocked != nil {
		discussion.IsLocked = *updates.IsLocked
	}
	discussion.UpdatedAt = time.Now()
	s.persistLocked()
}

// DeleteDiscussion removes the discussion from its owning community and
// decrements that community's post count.
func (s *CommunityStore) DeleteDiscussion(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	communityID, ok := s.discussionIndex[id]
	if !ok {
		return
	}
	community := s.communityLocked(communityID)
	if community == nil {
		return
	}
	for i := range community.Posts {
		if community.Posts[i].ID != id {
			continue
		}
		for _, reply := range community.Posts[i].Replies {
			delete(s.replyIndex, reply.ID)
		}
		community.Posts = append(community.Posts[:i], community.Posts[i+1:]...)
		if community.PostCount > 0 {
			community.PostCount--
		}
		delete(s.discussionIndex, id)
		s.persistLocked()
		return
	}
}

// AddReply creates a reply with a fresh id and an empty like set, appends it
// to the target discussion, and bumps its reply count. Returns a copy of
// the stored reply, or nil when the discussion does not exist.
func (s *CommunityStore) AddReply(data NewReply) *models.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	discussion := s.discussionLocked(data.DiscussionID)
	if discussion == nil {
		return nil
	}

	reply := models.Reply{
		ID:            s.ids.next(),
		DiscussionID:  data.DiscussionID,
		Content:       data.Content,
		Author:        data.Author,
		AuthorID:      data.AuthorID,
		CreatedAt:     time.Now(),
		Likes:         []string{},
		LikeCount:     0,
		ParentReplyID: data.ParentReplyID,
	}
	discussion.Replies = append(discussion.Replies, reply)
	discussion.ReplyCount++
	s.replyIndex[reply.ID] = discussion.ID
	s.persistLocked()
	return reply.Clone()
}

// UpdateReply rewrites the content of the matching reply. Unknown ids are a
// silent no-op.
func (s *CommunityStore) UpdateReply(id, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := s.replyLocked(id)
	if reply == nil {
		return
	}
	reply.Content = content
	s.persistLocked()
}

// DeleteReply removes the reply and decrements the owning discussion's reply
// count.
func (s *CommunityStore) DeleteReply(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	discussionID, ok := s.replyIndex[id]
	if !ok {
		return
	}
	discussion := s.discussionLocked(discussionID)
	if discussion == nil {
		return
	}
	for i := range discussion.Replies {
		if discussion.Replies[i].ID != id {
			continue
		}
		discussion.Replies = append(discussion.Replies[:i], discussion.Replies[i+1:]...)
		if discussion.ReplyCount > 0 {
			discussion.ReplyCount--
		}
		delete(s.replyIndex, id)
		s.persistLocked()
		return
	}
}

// LikeDiscussion records the user's like. Liking twice is a no-op; the like
// set never holds duplicate entries.
func (s *CommunityStore) LikeDiscussion(discussionID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	discussion := s.discussionLocked(discussionID)
	if discussion == nil {
		return
	}
	if !contains(discussion.Likes, userID) {
		discussion.Likes = append(discussion.Likes, userID)
		discussion.LikeCount++
	}
	s.persistLocked()
}

// UnlikeDiscussion removes the user's like, if present.
func (s *CommunityStore) UnlikeDiscussion(discussionID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	discussion := s.discussionLocked(discussionID)
	if discussion == nil {
		return
	}
	if contains(discussion.Likes, userID) {
		discussion.Likes = remove(discussion.Likes, userID)
		if discussion.LikeCount > 0 {
			discussion.LikeCount--
		}
	}
	s.persistLocked()
}

// LikeReply records the user's like on a reply, without duplicates.
func (s *CommunityStore) LikeReply(replyID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := s.replyLocked(replyID)
	if reply == nil {
		return
	}
	if !contains(reply.Likes, userID) {
		reply.Likes = append(reply.Likes, userID)
		reply.LikeCount++
	}
	s.persistLocked()
}

// UnlikeReply removes the user's like from a reply, if present.
func (s *CommunityStore) UnlikeReply(replyID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := s.replyLocked(replyID)
	if reply == nil {
		return
	}
	if contains(reply.Likes, userID) {
		reply.Likes = remove(reply.Likes, userID)
		if reply.LikeCount > 0 {
			reply.LikeCount--
		}
	}
	s.persistLocked()
}

// ViewDiscussion records that the user viewed the discussion. Repeat views
// by the same user never inflate the count.
func (s *CommunityStore) ViewDiscussion(discussionID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	discussion := s.discussionLocked(discussionID)
	if discussion == nil {
		return
	}
	if !contains(discussion.Views, userID) {
		discussion.Views = append(discussion.Views, userID)
		discussion.ViewCount++
		s.persistLocked()
	}
}

// GetCommunityByID returns a copy of the matching community, or false when
// no community has that id.
func (s *CommunityStore) GetCommunityByID(id string) (*models.Community, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(id)
	if community == nil {
		return nil, false
	}
	return community.Clone(), true
}

// GetDiscussionByID returns a copy of the matching discussion from whichever
// community owns it, or false when no discussion has that id.
func (s *CommunityStore) GetDiscussionByID(id string) (*models.Discussion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	discussion := s.discussionLocked(id)
	if discussion == nil {
		return nil, false
	}
	return discussion.Clone(), true
}

// GetDiscussionsByCommunity returns copies of the community's posts in
// insertion order. Unknown communities yield an empty list.
func (s *CommunityStore) GetDiscussionsByCommunity(communityID string) []models.Discussion {
	s.mu.Lock()
	defer s.mu.Unlock()

	community := s.communityLocked(communityID)
	if community == nil {
		return []models.Discussion{}
	}
	out := make([]models.Discussion, len(community.Posts))
	for i := range community.Posts {
		out[i] = *community.Posts[i].Clone()
	}
	return out
}

// GetUserMemberships materializes the communities in the session user's
// membership cache, in store order.
func (s *CommunityStore) GetUserMemberships() []*models.Community {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Community, 0, len(s.userMemberships))
	for _, community := range s.communities {
		if contains(s.userMemberships, community.ID) {
			out = append(out, community.Clone())
		}
	}
	return out
}

// MembershipIDs returns the session user's membership cache.
func (s *CommunityStore) MembershipIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.userMemberships...)
}

// JoinRequestIDs returns the session user's pending join-request cache.
func (s *CommunityStore) JoinRequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.userJoinRequests...)
}

// GetTrendingCommunities returns copies of the communities flagged trending.
// The flag is curated, not computed from activity.
func (s *CommunityStore) GetTrendingCommunities() []*models.Community {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Community
	for _, community := range s.communities {
		if community.Trending {
			out = append(out, community.Clone())
		}
	}
	return out
}

// SearchCommunities matches the query case-insensitively against community
// titles, descriptions, and tags.
func (s *CommunityStore) SearchCommunities(query string) []*models.Community {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(query)
	var out []*models.Community
	for _, community := range s.communities {
		if s.matchesLocked(community, lower) {
			out = append(out, community.Clone())
		}
	}
	return out
}

func (s *CommunityStore) matchesLocked(community *models.Community, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(community.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(community.Description), lowerQuery) {
		return true
	}
	for _, tag := range community.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

// Communities returns a copy of the whole collection in store order.
func (s *CommunityStore) Communities() []*models.Community {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Community, len(s.communities))
	for i, community := range s.communities {
		out[i] = community.Clone()
	}
	return out
}

func (s *CommunityStore) communityLocked(id string) *models.Community {
	for _, community := range s.communities {
		if community.ID == id {
			return community
		}
	}
	return nil
}

func (s *CommunityStore) discussionLocked(id string) *models.Discussion {
	communityID, ok := s.discussionIndex[id]
	if !ok {
		return nil
	}
	community := s.communityLocked(communityID)
	if community == nil {
		return nil
	}
	for i := range community.Posts {
		if community.Posts[i].ID == id {
			return &community.Posts[i]
		}
	}
	return nil
}

func (s *CommunityStore) replyLocked(id string) *models.Reply {
	discussionID, ok := s.replyIndex[id]
	if !ok {
		return nil
	}
	discussion := s.discussionLocked(discussionID)
	if discussion == nil {
		return nil
	}
	for i := range discussion.Replies {
		if discussion.Replies[i].ID == id {
			return &discussion.Replies[i]
		}
	}
	return nil
}

func (s *CommunityStore) rebuildIndexesLocked() {
	s.discussionIndex = make(map[string]string)
	s.replyIndex = make(map[string]string)
	for _, community := range s.communities {
		for i := range community.Posts {
			post := &community.Posts[i]
			s.discussionIndex[post.ID] = community.ID
			for j := range post.Replies {
				s.replyIndex[post.Replies[j].ID] = post.ID
			}
		}
		if community.JoinRequests == nil {
			community.JoinRequests = []string{}
		}
	}
	if s.userMemberships == nil {
		s.userMemberships = []string{}
	}
	if s.userJoinRequests == nil {
		s.userJoinRequests = []string{}
	}
}

func (s *CommunityStore) persistLocked() {
	blob, err := json.Marshal(communitySnapshot{
		Communities:      s.communities,
		UserMemberships:  s.userMemberships,
		UserJoinRequests: s.userJoinRequests,
	})
	if err != nil {
		log.Println("Error serializing community snapshot:", err)
		return
	}
	if err := s.snap.Save(context.Background(), CommunitiesSnapshotKey, blob); err != nil {
		log.Println("Error saving community snapshot:", err)
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func remove(list []string, value string) []string {
	out := list[:0]
	for _, item := range list {
		if item != value {
			out = append(out, item)
		}
	}
	return out
}
