package domain

// Reaction is a user's like or dislike mark on a community post.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Opposite returns the mutually exclusive counterpart.
func (r Reaction) Opposite() Reaction {
	if r == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}
