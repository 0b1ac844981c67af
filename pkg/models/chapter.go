package models

import "time"

// Chapter is an ordered script section of a project.
type Chapter struct {
	ID            int       `json:"id"`
	ProjectID     int       `json:"project_id"`
	Name          string    `json:"name"`
	ScriptContent *string   `json:"script_content"`
	OrderIndex    int       `json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChapterView nests the chapter's storyboards, ordered by order_index.
type ChapterView struct {
	Chapter
	Storyboards []Storyboard `json:"storyboards"`
}

// Storyboard is one frame of a chapter. OrderIndex orders display only and is not unique.
type Storyboard struct {
	ID               int       `json:"id"`
	ProjectID        int       `json:"project_id"`
	ChapterID        *int      `json:"chapter_id"`
	OrderIndex       int       `json:"order_index"`
	Dialogue         *string   `json:"dialogue"`
	SceneDescription *string   `json:"scene_description"`
	ImageURL         *string   `json:"image_url"`
	CreatedAt        time.Time `json:"created_at"`
}

// InChapter reports whether the storyboard hangs off the given chapter.
func (s *Storyboard) InChapter(chapterID int) bool {
	return s.ChapterID != nil && *s.ChapterID == chapterID
}

// ChapterCreateRequest 创建章节请求
type ChapterCreateRequest struct {
	Name          string  `json:"name"`
	ScriptContent *string `json:"script_content"`
	OrderIndex    int     `json:"order_index"`
}

// ChapterUpdateRequest 更新章节请求
type ChapterUpdateRequest struct {
	Name          *string `json:"name"`
	ScriptContent *string `json:"script_content"`
	OrderIndex    *int    `json:"order_index"`
}

// Apply overwrites the provided fields.
func (r *ChapterUpdateRequest) Apply(c *Chapter) {
	setString(&c.Name, r.Name)
	setOptional(&c.ScriptContent, r.ScriptContent)
	setInt(&c.OrderIndex, r.OrderIndex)
}

// StoryboardUpdateRequest 更新分镜请求
type StoryboardUpdateRequest struct {
	Dialogue         *string `json:"dialogue"`
	SceneDescription *string `json:"scene_description"`
	ImageURL         *string `json:"image_url"`
	OrderIndex       *int    `json:"order_index"`
}

// Apply overwrites the provided fields.
func (r *StoryboardUpdateRequest) Apply(s *Storyboard) {
	setOptional(&s.Dialogue, r.Dialogue)
	setOptional(&s.SceneDescription, r.SceneDescription)
	setOptional(&s.ImageURL, r.ImageURL)
	setInt(&s.OrderIndex, r.OrderIndex)
}

// StoryboardDraft is the generated content of one storyboard produced by a chapter split.
type StoryboardDraft struct {
	Dialogue         string `json:"dialogue" yaml:"dialogue"`
	SceneDescription string `json:"scene_description" yaml:"scene_description"`
}
