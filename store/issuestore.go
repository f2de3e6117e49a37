package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"civicconnect-be/models"
	"civicconnect-be/persist"
)

// IssuesSnapshotKey is the blob key the issue store persists under.
const IssuesSnapshotKey = "civic-connect-issues"

// IssueStore is the authoritative collection of civic issues. All mutation
// goes through named operations; each operation performs its full
// read-modify-write under the store lock so counters and vote sets can never
// be observed half-updated. After every mutation the whole state is
// serialized to the snapshot backend; snapshot failures are logged and
// swallowed, never surfaced to the caller.
type IssueStore struct {
	mu     sync.Mutex
	snap   persist.Snapshotter
	issues []*models.Issue
	ids    idSource
}

// NewIssue carries every caller-supplied field of an issue. The store fills
// in the id and zeroes the counters and collections. Field content is the
// caller's responsibility; the store does not re-validate.
type NewIssue struct {
	Title              string
	Description        string
	Status             models.IssueStatus
	Urgency            models.IssueUrgency
	Category           string
	Location           string
	Coordinates        *models.Coordinates
	ReportedBy         string
	ReportedAt         time.Time
	AssignedDepartment string
	Photos             []string
	Tags               []string
}

// IssueUpdate is a partial update; nil fields are left untouched.
type IssueUpdate struct {
	Title              *string
	Description        *string
	Status             *models.IssueStatus
	Urgency            *models.IssueUrgency
	Category           *string
	Location           *string
	Coordinates        *models.Coordinates
	AssignedDepartment *string
	Photos             []string
	Tags               []string
}

// NewComment carries the caller-supplied fields of a comment.
type NewComment struct {
	Author     string
	Content    string
	Timestamp  time.Time
	IsOfficial bool
}

// NewIssueStore loads the persisted snapshot, or the seed dataset when no
// snapshot exists yet.
func NewIssueStore(snap persist.Snapshotter) (*IssueStore, error) {
	s := &IssueStore{snap: snap}

	blob, ok, err := snap.Load(context.Background(), IssuesSnapshotKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.issues = seedIssues()
		return s, nil
	}
	if err := json.Unmarshal(blob, &s.issues); err != nil {
		return nil, err
	}
	for _, issue := range s.issues {
		if issue.UserVotes == nil {
			issue.UserVotes = map[string]models.VoteType{}
		}
	}
	return s, nil
}

// AddIssue creates an issue from the given fields, assigns a fresh id, and
// places it at the front of the collection (most-recent-first). Returns a
// copy of the stored issue.
func (s *IssueStore) AddIssue(data NewIssue) *models.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := &models.Issue{
		ID:                 s.ids.next(),
		Title:              data.Title,
		Description:        data.Description,
		Status:             data.Status,
		Urgency:            data.Urgency,
		Category:           data.Category,
		Location:           data.Location,
		Coordinates:        data.Coordinates,
		ReportedBy:         data.ReportedBy,
		ReportedAt:         data.ReportedAt,
		AssignedDepartment: data.AssignedDepartment,
		Photos:             append([]string(nil), data.Photos...),
		Tags:               append([]string(nil), data.Tags...),
		Comments:           []models.Comment{},
		UserVotes:          map[string]models.VoteType{},
	}

	s.issues = append([]*models.Issue{issue}, s.issues...)
	s.persistLocked()
	return issue.Clone()
}

// UpdateIssue merges the given fields into the matching issue. Unknown ids
// are a silent no-op.
func (s *IssueStore) UpdateIssue(id string, updates IssueUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findLocked(id)
	if issue == nil {
		return
	}
	if updates.Title != nil {
		issue.Title = *updates.Title
	}
	if updates.Description != nil {
		issue.Description = *updates.Description
	}
	if updates.Status != nil {
		issue.Status = *updates.Status
	}
	if updates.Urgency != nil {
		issue.Urgency = *updates.Urgency
	}
	if updates.Category != nil {
		issue.Category = *updates.Category
	}
	if updates.Location != nil {
		issue.Location = *updates.Location
	}
	if updates.Coordinates != nil {
		c := *updates.Coordinates
		issue.Coordinates = &c
	}
	if updates.AssignedDepartment != nil {
		issue.AssignedDepartment = *updates.AssignedDepartment
	}
	if updates.Photos != nil {
		issue.Photos = append([]string(nil), updates.Photos...)
	}
	if updates.Tags != nil {
		issue.Tags = append([]string(nil), updates.Tags...)
	}
	s.persistLocked()
}

// VoteOnIssue applies the toggle-vote transition for userID on issueID:
// re-submitting the current vote retracts it, submitting the opposite vote
// flips it, and a first vote simply counts. The counters always equal the
// number of entries of that direction in the vote map.
func (s *IssueStore) VoteOnIssue(issueID, userID string, vote models.VoteType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findLocked(issueID)
	if issue == nil {
		return
	}

	current, hasVote := issue.UserVotes[userID]

	// Remove the previous vote, if any.
	if hasVote {
		switch current {
		case models.VoteUp:
			issue.Upvotes--
		case models.VoteDown:
			issue.Downvotes--
		}
	}

	if hasVote && current == vote {
		// Same direction again: retract.
		delete(issue.UserVotes, userID)
	} else {
		issue.UserVotes[userID] = vote
		switch vote {
		case models.VoteUp:
			issue.Upvotes++
		case models.VoteDown:
			issue.Downvotes++
		}
	}
	s.persistLocked()
}

// AddComment appends a comment with a fresh id to the issue's comment
// sequence. Unknown issue ids are a silent no-op.
func (s *IssueStore) AddComment(issueID string, data NewComment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findLocked(issueID)
	if issue == nil {
		return
	}
	issue.Comments = append(issue.Comments, models.Comment{
		ID:         s.ids.next(),
		Author:     data.Author,
		Content:    data.Content,
		Timestamp:  data.Timestamp,
		IsOfficial: data.IsOfficial,
	})
	s.persistLocked()
}

// GetIssueByID returns a copy of the matching issue, or false when no issue
// has that id.
func (s *IssueStore) GetIssueByID(id string) (*models.Issue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue := s.findLocked(id)
	if issue == nil {
		return nil, false
	}
	return issue.Clone(), true
}

// Issues returns a copy of the whole collection in store order
// (most-recent-first).
func (s *IssueStore) Issues() []*models.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Issue, len(s.issues))
	for i, issue := range s.issues {
		out[i] = issue.Clone()
	}
	return out
}

func (s *IssueStore) findLocked(id string) *models.Issue {
	for _, issue := range s.issues {
		if issue.ID == id {
			return issue
		}
	}
	return nil
}

func (s *IssueStore) persistLocked() {
	blob, err := json.Marshal(s.issues)
	if err != nil {
		log.Println("Error serializing issue snapshot:", err)
		return
	}
	if err := s.snap.Save(context.Background(), IssuesSnapshotKey, blob); err != nil {
		log.Println("Error saving issue snapshot:", err)
	}
}
