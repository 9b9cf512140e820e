package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReactionKind_Toggle(t *testing.T) {
	tests := []struct {
		held      ReactionKind
		requested ReactionKind
		expected  ReactionKind
	}{
		{ReactionNone, ReactionLike, ReactionLike},
		{ReactionNone, ReactionDislike, ReactionDislike},
		{ReactionLike, ReactionLike, ReactionNone},
		{ReactionLike, ReactionDislike, ReactionDislike},
		{ReactionDislike, ReactionDislike, ReactionNone},
		{ReactionDislike, ReactionLike, ReactionLike},
	}

	for _, tt := range tests {
		t.Run(string(tt.held)+"->"+string(tt.requested), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.held.Toggle(tt.requested))
		})
	}
}

func TestReactionKind_DoubleToggleRestores(t *testing.T) {
	for _, r := range []ReactionKind{ReactionLike, ReactionDislike} {
		for _, held := range []ReactionKind{ReactionNone, r} {
			assert.Equal(t, held, held.Toggle(r).Toggle(r), "held %q requested %q", held, r)
		}
	}
}

func TestPost_DeriveReactions(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	post := &Post{
		Reactions: []PostReaction{
			{UserID: alice, Kind: ReactionLike},
			{UserID: bob, Kind: ReactionDislike},
			{UserID: carol, Kind: ReactionLike},
		},
		Comments: []Comment{
			{Reactions: []CommentReaction{{UserID: bob, Kind: ReactionLike}}},
		},
	}

	post.DeriveReactions()

	assert.Equal(t, []uuid.UUID{alice, carol}, post.Likes)
	assert.Equal(t, []uuid.UUID{bob}, post.Dislikes)
	assert.Equal(t, []uuid.UUID{bob}, post.Comments[0].Likes)
	assert.NotNil(t, post.Comments[0].Dislikes)
	assert.Empty(t, post.Comments[0].Dislikes)
}

func TestPost_DeriveReactionsEmpty(t *testing.T) {
	post := &Post{}
	post.DeriveReactions()

	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Dislikes)
	assert.NotNil(t, post.Comments)
}
