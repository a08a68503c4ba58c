// Package reaction keeps the like/dislike state of one post consistent with
// the server while confirmations are in flight.
//
// A Reconciler is owned by a single event loop. Toggles apply locally and
// return a Pending; the caller runs Pending.Confirm off the loop and hands the
// Result back to Settle on the loop.
package reaction

import (
	"context"

	"github.com/stylesense/stylesense/domain"
)

// State is the viewing user's reaction to one post. Liked and Disliked are
// never both true.
type State struct {
	Liked        bool
	Disliked     bool
	LikeCount    uint
	DislikeCount uint
}

// Confirmer issues the remote reaction call.
type Confirmer interface {
	React(ctx context.Context, kind domain.Reaction, postID string) error
}

// Outcome reports what Settle did with a Result.
type Outcome int

const (
	// Confirmed means the server accepted the transition; state is unchanged.
	Confirmed Outcome = iota
	// RolledBack means the server rejected the transition and the
	// pre-transition state was restored.
	RolledBack
	// Stale means the Result did not belong to the outstanding transition.
	Stale
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled back"
	default:
		return "stale"
	}
}

// Pending is one optimistic transition awaiting confirmation.
type Pending struct {
	PostID string
	Kind   domain.Reaction
	Before State // rollback anchor
	After  State
	seq    uint64
}

// Confirm performs exactly one remote call for the transition.
func (p Pending) Confirm(ctx context.Context, c Confirmer) Result {
	return Result{Pending: p, Err: c.React(ctx, p.Kind, p.PostID)}
}

// Result is the completion of a Pending's confirmation.
type Result struct {
	Pending Pending
	Err     error
}

// Reconciler owns the reaction state of one post.
type Reconciler struct {
	postID   string
	state    State
	inflight *Pending
	seq      uint64
}

// New creates a reconciler from server-supplied state. An input that violates
// mutual exclusion keeps the like and drops the dislike flag.
func New(postID string, initial State) *Reconciler {
	if initial.Liked && initial.Disliked {
		initial.Disliked = false
	}
	return &Reconciler{postID: postID, state: initial}
}

// FromPost builds the reconciler for userID's view of post.
func FromPost(post domain.Post, userID string) *Reconciler {
	return New(post.ID, State{
		Liked:        post.LikedBy(userID),
		Disliked:     post.DislikedBy(userID),
		LikeCount:    uint(len(post.Likes)),
		DislikeCount: uint(len(post.Dislikes)),
	})
}

// PostID returns the post this reconciler tracks.
func (r *Reconciler) PostID() string { return r.postID }

// State returns the current, possibly optimistic, state.
func (r *Reconciler) State() State { return r.state }

// InFlight reports whether a confirmation is outstanding.
func (r *Reconciler) InFlight() bool { return r.inflight != nil }

// ToggleLike flips the like and returns the transition to confirm.
func (r *Reconciler) ToggleLike() (Pending, error) {
	return r.toggle(domain.ReactionLike)
}

// ToggleDislike flips the dislike and returns the transition to confirm.
func (r *Reconciler) ToggleDislike() (Pending, error) {
	return r.toggle(domain.ReactionDislike)
}

func (r *Reconciler) toggle(kind domain.Reaction) (Pending, error) {
	if r.inflight != nil {
		return Pending{}, domain.ErrReactionInFlight
	}
	r.seq++
	p := Pending{
		PostID: r.postID,
		Kind:   kind,
		Before: r.state,
		After:  Apply(r.state, kind),
		seq:    r.seq,
	}
	r.state = p.After
	r.inflight = &p
	return p, nil
}

// Settle applies the confirmation outcome. On failure the state captured
// before the transition is restored exactly.
func (r *Reconciler) Settle(res Result) Outcome {
	if r.inflight == nil || res.Pending.seq != r.inflight.seq || res.Pending.PostID != r.postID {
		return Stale
	}
	r.inflight = nil
	if res.Err != nil {
		r.state = res.Pending.Before
		return RolledBack
	}
	return Confirmed
}

// Apply is the local simulation of the server's toggle rule. Turning one
// reaction on clears the other.
func Apply(s State, kind domain.Reaction) State {
	if kind == domain.ReactionDislike {
		return mirror(Apply(mirror(s), domain.ReactionLike))
	}
	if s.Liked {
		s.Liked = false
		s.LikeCount = dec(s.LikeCount)
		return s
	}
	s.Liked = true
	s.LikeCount++
	if s.Disliked {
		s.Disliked = false
		s.DislikeCount = dec(s.DislikeCount)
	}
	return s
}

func mirror(s State) State {
	return State{
		Liked:        s.Disliked,
		Disliked:     s.Liked,
		LikeCount:    s.DislikeCount,
		DislikeCount: s.LikeCount,
	}
}

func dec(n uint) uint {
	if n == 0 {
		return 0
	}
	return n - 1
}
