// Package validation holds the per-operation input constraint checks.
// Each function returns the full list of violated constraints, not just the
// first one, so a caller can fix and resubmit in one round trip.
package validation

import (
	"fmt"
	"unicode/utf8"
)

const (
	// Subredit name and description bounds.
	SubreditNameMin        = 5
	SubreditNameMax        = 20
	SubreditDescriptionMax = 100

	// Post bounds.
	PostTitleMin   = 3
	PostContentMin = 10

	// Comment bounds.
	CommentContentMin = 5
)

// NewSubredit checks a subredit creation request.
func NewSubredit(name, description string) []string {
	var violations []string
	if n := utf8.RuneCountInString(name); n < SubreditNameMin || n > SubreditNameMax {
		violations = append(violations,
			fmt.Sprintf("name must be between %d and %d characters", SubreditNameMin, SubreditNameMax))
	}
	if utf8.RuneCountInString(description) > SubreditDescriptionMax {
		violations = append(violations,
			fmt.Sprintf("description must be at most %d characters", SubreditDescriptionMax))
	}
	return violations
}

// NewPost checks a post creation request.
func NewPost(title, content string) []string {
	var violations []string
	if utf8.RuneCountInString(title) < PostTitleMin {
		violations = append(violations,
			fmt.Sprintf("title must be at least %d characters", PostTitleMin))
	}
	violations = append(violations, postContent(content)...)
	return violations
}

// PostUpdate checks a post content replacement request.
func PostUpdate(content string) []string {
	return postContent(content)
}

// NewComment checks a comment append request.
func NewComment(content string) []string {
	if utf8.RuneCountInString(content) < CommentContentMin {
		return []string{fmt.Sprintf("content must be at least %d characters", CommentContentMin)}
	}
	return nil
}

func postContent(content string) []string {
	if utf8.RuneCountInString(content) < PostContentMin {
		return []string{fmt.Sprintf("content must be at least %d characters", PostContentMin)}
	}
	return nil
}
