package database

import (
	"sort"

	"aigc-studio-mock-api/pkg/models"
)

func (db *MockDatabase) chapterLocked(orgID, projectID, chapterID int) (models.Chapter, error) {
	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return models.Chapter{}, err
	}
	c, ok := db.st.chapters[chapterID]
	if !ok || c.ProjectID != projectID {
		return models.Chapter{}, notFound("Chapter")
	}
	return c, nil
}

// ListChapters 列出项目章节（按 order_index 升序），每章附带分镜
func (db *MockDatabase) ListChapters(orgID, projectID int) ([]models.ChapterView, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return nil, err
	}
	chapters := []models.Chapter{}
	for _, c := range db.st.chapters {
		if c.ProjectID == projectID {
			chapters = append(chapters, c)
		}
	}
	sort.Slice(chapters, func(i, j int) bool {
		if chapters[i].OrderIndex != chapters[j].OrderIndex {
			return chapters[i].OrderIndex < chapters[j].OrderIndex
		}
		return chapters[i].ID < chapters[j].ID
	})

	views := make([]models.ChapterView, 0, len(chapters))
	for _, c := range chapters {
		views = append(views, db.chapterViewLocked(c))
	}
	return views, nil
}

// CreateChapter 创建章节
func (db *MockDatabase) CreateChapter(orgID, projectID int, req models.ChapterCreateRequest) (models.ChapterView, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return models.ChapterView{}, err
	}
	if req.Name == "" {
		return models.ChapterView{}, newError(ErrValidation, "name is required")
	}
	c := models.Chapter{
		ID:            db.ids.next(kindChapters),
		ProjectID:     projectID,
		Name:          req.Name,
		ScriptContent: req.ScriptContent,
		OrderIndex:    req.OrderIndex,
		CreatedAt:     db.now(),
	}
	db.st.chapters[c.ID] = c
	db.persistLocked()
	return db.chapterViewLocked(c), nil
}

// UpdateChapter 更新章节
func (db *MockDatabase) UpdateChapter(orgID, projectID, chapterID int, req models.ChapterUpdateRequest) (models.ChapterView, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, err := db.chapterLocked(orgID, projectID, chapterID)
	if err != nil {
		return models.ChapterView{}, err
	}
	req.Apply(&c)
	db.st.chapters[chapterID] = c
	db.persistLocked()
	return db.chapterViewLocked(c), nil
}

// DeleteChapter 删除章节及其分镜
func (db *MockDatabase) DeleteChapter(orgID, projectID, chapterID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.chapterLocked(orgID, projectID, chapterID); err != nil {
		return err
	}
	for id, sb := range db.st.storyboards {
		if sb.InChapter(chapterID) {
			delete(db.st.storyboards, id)
		}
	}
	delete(db.st.chapters, chapterID)
	db.persistLocked()
	return nil
}

// SplitChapter 为章节追加分镜，order_index 从现有最大值之后连续编号（无分镜时从 0 开始）
func (db *MockDatabase) SplitChapter(orgID, projectID, chapterID int, drafts []models.StoryboardDraft) ([]models.Storyboard, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.chapterLocked(orgID, projectID, chapterID); err != nil {
		return nil, err
	}
	base := -1
	for _, sb := range db.chapterStoryboardsLocked(projectID, chapterID) {
		if sb.OrderIndex > base {
			base = sb.OrderIndex
		}
	}
	base++

	now := db.now()
	created := make([]models.Storyboard, 0, len(drafts))
	for offset, d := range drafts {
		chapter := chapterID
		dialogue := d.Dialogue
		description := d.SceneDescription
		sb := models.Storyboard{
			ID:               db.ids.next(kindStoryboards),
			ProjectID:        projectID,
			ChapterID:        &chapter,
			OrderIndex:       base + offset,
			Dialogue:         &dialogue,
			SceneDescription: &description,
			CreatedAt:        now,
		}
		db.st.storyboards[sb.ID] = sb
		created = append(created, sb)
	}
	db.persistLocked()
	return created, nil
}

// ListStoryboards 列出章节分镜
func (db *MockDatabase) ListStoryboards(orgID, projectID, chapterID int) ([]models.Storyboard, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if _, err := db.chapterLocked(orgID, projectID, chapterID); err != nil {
		return nil, err
	}
	return db.chapterStoryboardsLocked(projectID, chapterID), nil
}

// UpdateStoryboard 更新分镜
func (db *MockDatabase) UpdateStoryboard(orgID, projectID, chapterID, storyboardID int, req models.StoryboardUpdateRequest) (models.Storyboard, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.chapterLocked(orgID, projectID, chapterID); err != nil {
		return models.Storyboard{}, err
	}
	sb, ok := db.st.storyboards[storyboardID]
	if !ok || sb.ProjectID != projectID || !sb.InChapter(chapterID) {
		return models.Storyboard{}, notFound("Storyboard")
	}
	req.Apply(&sb)
	db.st.storyboards[storyboardID] = sb
	db.persistLocked()
	return sb, nil
}
