package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"civicconnect-be/models"
	"civicconnect-be/persist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededIssueStore(t *testing.T) *IssueStore {
	t.Helper()
	s, err := NewIssueStore(persist.NewMemorySnapshotter())
	require.NoError(t, err)
	return s
}

func newEmptyIssueStore(t *testing.T) *IssueStore {
	t.Helper()
	snap := persist.NewMemorySnapshotter()
	require.NoError(t, snap.Save(context.Background(), IssuesSnapshotKey, []byte("[]")))
	s, err := NewIssueStore(snap)
	require.NoError(t, err)
	return s
}

// assertVoteCounters checks the counter invariant on a store-created issue:
// both counters equal the number of vote-map entries of that direction.
// Seeded issues carry display baselines on top, so they are excluded.
func assertVoteCounters(t *testing.T, issue *models.Issue) {
	t.Helper()
	ups, downs := 0, 0
	for _, vote := range issue.UserVotes {
		switch vote {
		case models.VoteUp:
			ups++
		case models.VoteDown:
			downs++
		}
	}
	assert.Equal(t, ups, issue.Upvotes, "upvote counter drifted")
	assert.Equal(t, downs, issue.Downvotes, "downvote counter drifted")
}

func TestSeedLoadedWhenNoSnapshot(t *testing.T) {
	s := newSeededIssueStore(t)

	issues := s.Issues()
	require.Len(t, issues, 8)

	issue, ok := s.GetIssueByID("3")
	require.True(t, ok)
	assert.Equal(t, models.StatusResolved, issue.Status)
	assert.Equal(t, 31, issue.Upvotes)
	assert.Equal(t, 0, issue.Downvotes)
}

func TestAddIssueOnEmptyStore(t *testing.T) {
	s := newEmptyIssueStore(t)

	created := s.AddIssue(NewIssue{
		Title:       "Test",
		Description: "Test description",
		Status:      models.StatusPending,
		Urgency:     models.UrgencyLow,
		Category:    "roads",
		Location:    "Test Street",
		ReportedBy:  "Tester",
		ReportedAt:  time.Now(),
	})

	issues := s.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, created.ID, issues[0].ID)
	assert.Equal(t, 0, issues[0].Upvotes)
	assert.Equal(t, 0, issues[0].Downvotes)
	assert.Empty(t, issues[0].Comments)
	assert.Empty(t, issues[0].UserVotes)
}

func TestAddIssuePrependsNewest(t *testing.T) {
	s := newEmptyIssueStore(t)

	first := s.AddIssue(NewIssue{Title: "first"})
	second := s.AddIssue(NewIssue{Title: "second"})

	issues := s.Issues()
	require.Len(t, issues, 2)
	assert.Equal(t, second.ID, issues[0].ID)
	assert.Equal(t, first.ID, issues[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestVoteToggleLaw(t *testing.T) {
	s := newSeededIssueStore(t)

	baseline, ok := s.GetIssueByID("1")
	require.True(t, ok)

	s.VoteOnIssue("1", "u1", models.VoteUp)
	s.VoteOnIssue("1", "u1", models.VoteUp)

	issue, _ := s.GetIssueByID("1")
	assert.Equal(t, baseline.Upvotes, issue.Upvotes)
	assert.Equal(t, baseline.Downvotes, issue.Downvotes)
	_, voted := issue.UserVotes["u1"]
	assert.False(t, voted)
}

func TestVoteFlipLaw(t *testing.T) {
	s := newSeededIssueStore(t)

	baseline, ok := s.GetIssueByID("1")
	require.True(t, ok)

	s.VoteOnIssue("1", "u1", models.VoteUp)
	s.VoteOnIssue("1", "u1", models.VoteDown)

	issue, _ := s.GetIssueByID("1")
	assert.Equal(t, baseline.Upvotes, issue.Upvotes)
	assert.Equal(t, baseline.Downvotes+1, issue.Downvotes)
	assert.Equal(t, models.VoteDown, issue.UserVotes["u1"])
}

func TestVoteCountersMatchVoteMap(t *testing.T) {
	s := newEmptyIssueStore(t)
	created := s.AddIssue(NewIssue{Title: "counted"})

	votes := []struct {
		user string
		vote models.VoteType
	}{
		{"u1", models.VoteUp},
		{"u2", models.VoteUp},
		{"u3", models.VoteDown},
		{"u1", models.VoteUp},   // retract
		{"u2", models.VoteDown}, // flip
		{"u4", models.VoteUp},
	}
	for _, v := range votes {
		s.VoteOnIssue(created.ID, v.user, v.vote)
		issue, _ := s.GetIssueByID(created.ID)
		assertVoteCounters(t, issue)
	}

	issue, _ := s.GetIssueByID(created.ID)
	assert.Equal(t, 1, issue.Upvotes)
	assert.Equal(t, 2, issue.Downvotes)
}

func TestVoteOnSeedIssue(t *testing.T) {
	s := newSeededIssueStore(t)

	s.VoteOnIssue("3", "newUser", models.VoteUp)

	issue, _ := s.GetIssueByID("3")
	assert.Equal(t, 32, issue.Upvotes)
	assert.Equal(t, models.VoteUp, issue.UserVotes["newUser"])
}

func TestVoteUnknownIssueIsNoop(t *testing.T) {
	s := newSeededIssueStore(t)
	before := s.Issues()

	s.VoteOnIssue("no-such-id", "u1", models.VoteUp)

	assert.Equal(t, before, s.Issues())
}

func TestUpdateIssueMergesFields(t *testing.T) {
	s := newSeededIssueStore(t)

	status := models.StatusInProgress
	dept := "BBMP Road Infrastructure"
	s.UpdateIssue("1", IssueUpdate{Status: &status, AssignedDepartment: &dept})

	issue, _ := s.GetIssueByID("1")
	assert.Equal(t, models.StatusInProgress, issue.Status)
	assert.Equal(t, dept, issue.AssignedDepartment)
	// Untouched fields survive the merge.
	assert.Equal(t, "Large Pothole on Outer Ring Road", issue.Title)
}

func TestUpdateUnknownIssueIsNoop(t *testing.T) {
	s := newSeededIssueStore(t)
	before := s.Issues()

	title := "ghost"
	s.UpdateIssue("no-such-id", IssueUpdate{Title: &title})

	assert.Equal(t, before, s.Issues())
}

func TestAddComment(t *testing.T) {
	s := newSeededIssueStore(t)

	issue, _ := s.GetIssueByID("4")
	require.Empty(t, issue.Comments)

	s.AddComment("4", NewComment{
		Author:     "BWSSB",
		Content:    "Crew dispatched.",
		Timestamp:  time.Now(),
		IsOfficial: true,
	})

	issue, _ = s.GetIssueByID("4")
	require.Len(t, issue.Comments, 1)
	assert.NotEmpty(t, issue.Comments[0].ID)
	assert.Equal(t, "Crew dispatched.", issue.Comments[0].Content)
	assert.True(t, issue.Comments[0].IsOfficial)

	// Unknown issue: silent no-op.
	s.AddComment("no-such-id", NewComment{Author: "x", Content: "y"})
}

func TestGetIssueByIDAbsent(t *testing.T) {
	s := newSeededIssueStore(t)

	issue, ok := s.GetIssueByID("no-such-id")
	assert.False(t, ok)
	assert.Nil(t, issue)
}

func TestIssueSnapshotRoundTrip(t *testing.T) {
	snap := persist.NewMemorySnapshotter()
	s, err := NewIssueStore(snap)
	require.NoError(t, err)

	s.VoteOnIssue("3", "newUser", models.VoteUp)
	s.AddComment("4", NewComment{Author: "a", Content: "b", Timestamp: time.Now()})

	reloaded, err := NewIssueStore(snap)
	require.NoError(t, err)

	issue, ok := reloaded.GetIssueByID("3")
	require.True(t, ok)
	assert.Equal(t, 32, issue.Upvotes)
	assert.Equal(t, models.VoteUp, issue.UserVotes["newUser"])

	issue, _ = reloaded.GetIssueByID("4")
	assert.Len(t, issue.Comments, 1)
}

type failingSnapshotter struct{}

func (failingSnapshotter) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (failingSnapshotter) Save(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func TestPersistFailureDoesNotRollBackMutation(t *testing.T) {
	s, err := NewIssueStore(failingSnapshotter{})
	require.NoError(t, err)

	s.VoteOnIssue("1", "u1", models.VoteUp)

	issue, _ := s.GetIssueByID("1")
	assert.Equal(t, 24, issue.Upvotes)
}

func TestReturnedIssuesAreCopies(t *testing.T) {
	s := newSeededIssueStore(t)

	issue, _ := s.GetIssueByID("1")
	issue.Title = "mutated"
	issue.UserVotes["intruder"] = models.VoteUp

	fresh, _ := s.GetIssueByID("1")
	assert.Equal(t, "Large Pothole on Outer Ring Road", fresh.Title)
	assert.NotContains(t, fresh.UserVotes, "intruder")
}
