package domain

import (
	"fmt"
	"os"
	"time"
)

const fileDateLayout = "2006-01-02"

// AudioClip is a synthesized voice-over persisted on disk.
type AudioClip struct {
	Path     string        `json:"path"`
	Duration time.Duration `json:"duration"`
}

// Discard removes the clip file. A missing file is not an error.
func (c *AudioClip) Discard() error {
	if c == nil || c.Path == "" {
		return nil
	}
	if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove audio clip %s: %w", c.Path, err)
	}
	return nil
}

// Script is the plan of one generated video.
type Script struct {
	FileName        string        `json:"file_name"`
	PostID          string        `json:"post_id"`
	URL             string        `json:"url"`
	Title           string        `json:"title"`
	TitleAudio      *AudioClip    `json:"title_audio"`
	TitleScreenshot string        `json:"title_screenshot,omitempty"`
	TotalDuration   time.Duration `json:"total_duration"`
	Scenes          []*Scene      `json:"scenes"`
}

// NewScript derives the file name from date and post id. The scene slice is
// allocated per script.
func NewScript(post *Post, date time.Time) *Script {
	return &Script{
		FileName: ScriptFileName(date, post.ID),
		PostID:   post.ID,
		URL:      post.PageURL(),
		Title:    post.Title,
		Scenes:   make([]*Scene, 0, 4),
	}
}

func ScriptFileName(date time.Time, postID string) string {
	return fmt.Sprintf("%s-%s", date.Format(fileDateLayout), postID)
}

// Scene is one comment narrated over its screenshot.
type Scene struct {
	Text       string     `json:"text"`
	CommentID  string     `json:"comment_id"`
	Audio      *AudioClip `json:"audio"`
	Screenshot string     `json:"screenshot,omitempty"`
}

// DOMID is the element id Reddit renders for the comment node.
func (s *Scene) DOMID() string {
	return "t1_" + s.CommentID
}
