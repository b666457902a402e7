package domain

import "time"

// Post is a Reddit submission together with its top-level comments.
type Post struct {
	ID        string    // Base36 submission id, without the t3_ prefix
	URL       string    // Submission url (external link or the post itself)
	Permalink string    // Absolute url of the comments page
	Title     string
	Subreddit string
	Score     int
	NSFW      bool
	CreatedAt time.Time
	Comments  []Comment // Top-level comments in API order
}

// HoursSincePosted reports the post age relative to now.
func (p *Post) HoursSincePosted(now time.Time) float64 {
	return now.Sub(p.CreatedAt).Hours()
}

// PageURL is the page that renders the post and its comments.
func (p *Post) PageURL() string {
	if p.Permalink != "" {
		return p.Permalink
	}
	return p.URL
}

type Comment struct {
	ID       string // Base36 comment id, without the t1_ prefix
	Body     string // Raw markdown
	Author   string
	Score    int
	Stickied bool
}

// Removed reports whether the comment body was deleted by its author or a moderator.
func (c *Comment) Removed() bool {
	return c.Body == "[deleted]" || c.Body == "[removed]"
}
