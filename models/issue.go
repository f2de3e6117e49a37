package models

import "time"

// IssueStatus enum
type IssueStatus string

const (
	StatusPending    IssueStatus = "pending"
	StatusInProgress IssueStatus = "in-progress"
	StatusResolved   IssueStatus = "resolved"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// IssueUrgency enum
type IssueUrgency string

const (
	UrgencyLow    IssueUrgency = "low"
	UrgencyMedium IssueUrgency = "medium"
	UrgencyHigh   IssueUrgency = "high"
)

func (u IssueUrgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Coordinates holds a map position for an issue
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Issue represents a civic issue reported by a user
type Issue struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Status             IssueStatus         `json:"status"`
	Urgency            IssueUrgency        `json:"urgency"`
	Category           string              `json:"category"`
	Location           string              `json:"location"`
	Coordinates        *Coordinates        `json:"coordinates,omitempty"`
	ReportedBy         string              `json:"reportedBy"`
	ReportedAt         time.Time           `json:"reportedAt"`
	AssignedDepartment string              `json:"assignedDepartment,omitempty"`
	Upvotes            int                 `json:"upvotes"`
	Downvotes          int                 `json:"downvotes"`
	Comments           []Comment           `json:"comments"`
	Photos             []string            `json:"photos,omitempty"`
	Tags               []string            `json:"tags"`
	UserVotes          map[string]VoteType `json:"userVotes"`
}

// Comment is a single remark on an issue. Comments are append-only and
// immutable once created.
type Comment struct {
	ID         string    `json:"id"`
	Author     string    `json:"author"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	IsOfficial bool      `json:"isOfficial,omitempty"`
}

// Clone returns a deep copy so callers can never reach into store-owned state.
func (i *Issue) Clone() *Issue {
	out := *i
	if i.Coordinates != nil {
		c := *i.Coordinates
		out.Coordinates = &c
	}
	out.Comments = append([]Comment(nil), i.Comments...)
	out.Photos = append([]string(nil), i.Photos...)
	out.Tags = append([]string(nil), i.Tags...)
	out.UserVotes = make(map[string]VoteType, len(i.UserVotes))
	for user, vote := range i.UserVotes {
		out.UserVotes[user] = vote
	}
	return &out
}
