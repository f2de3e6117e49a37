package models

import "time"

// Community is a topical or regional group containing discussions. Membership
// and pending join requests are tracked per community; counters are kept in
// step with the underlying collections on every mutation.
type Community struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Region       string       `json:"region"`
	Members      []string     `json:"members"`
	MemberCount  int          `json:"memberCount"`
	Posts        []Discussion `json:"posts"`
	PostCount    int          `json:"postCount"`
	LastActivity time.Time    `json:"lastActivity"`
	Trending     bool         `json:"trending"`
	Moderator    string       `json:"moderator"`
	CreatedAt    time.Time    `json:"createdAt"`
	Rules        []string     `json:"rules,omitempty"`
	Tags         []string     `json:"tags"`
	IsPrivate    bool         `json:"isPrivate"`
	JoinRequests []string     `json:"joinRequests"`
}

// Discussion is a post within a community.
type Discussion struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"communityId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	AuthorID    string    `json:"authorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Replies     []Reply   `json:"replies"`
	ReplyCount  int       `json:"replyCount"`
	Likes       []string  `json:"likes"`
	LikeCount   int       `json:"likeCount"`
	Views       []string  `json:"views"`
	ViewCount   int       `json:"viewCount"`
	Tags        []string  `json:"tags"`
	IsPinned    bool      `json:"isPinned"`
	// IsLocked is advisory only; the store still accepts replies to a
	// locked discussion and leaves enforcement to the caller.
	IsLocked bool `json:"isLocked"`
}

// Reply is a response to a discussion, optionally threaded one level deep
// under another reply.
type Reply struct {
	ID            string    `json:"id"`
	DiscussionID  string    `json:"discussionId"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	AuthorID      string    `json:"authorId"`
	CreatedAt     time.Time `json:"createdAt"`
	Likes         []string  `json:"likes"`
	LikeCount     int       `json:"likeCount"`
	ParentReplyID string    `json:"parentReplyId,omitempty"`
}

func (c *Community) Clone() *Community {
	out := *c
	out.Members = append([]string(nil), c.Members...)
	out.Rules = append([]string(nil), c.Rules...)
	out.Tags = append([]string(nil), c.Tags...)
	out.JoinRequests = append([]string(nil), c.JoinRequests...)
	out.Posts = make([]Discussion, len(c.Posts))
	for i := range c.Posts {
		out.Posts[i] = *c.Posts[i].Clone()
	}
	return &out
}

func (d *Discussion) Clone() *Discussion {
	out := *d
	out.Likes = append([]string(nil), d.Likes...)
	out.Views = append([]string(nil), d.Views...)
	out.Tags = append([]string(nil), d.Tags...)
	out.Replies = make([]Reply, len(d.Replies))
	for i := range d.Replies {
		out.Replies[i] = *d.Replies[i].Clone()
	}
	return &out
}

func (r *Reply) Clone() *Reply {
	out := *r
	out.Likes = append([]string(nil), r.Likes...)
	return &out
}
