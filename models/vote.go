package models

// VoteType is the direction of a user's vote on an issue. A user holds at
// most one vote per issue; re-submitting the same direction retracts it and
// submitting the opposite direction flips it.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}
