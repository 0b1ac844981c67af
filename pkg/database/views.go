package database

import (
	"sort"
	"time"

	"aigc-studio-mock-api/pkg/models"
)

// publicUserLocked resolves a possibly dangling user reference.
func (db *MockDatabase) publicUserLocked(userID *int) *models.PublicUser {
	if userID == nil {
		return nil
	}
	u, ok := db.st.users[*userID]
	if !ok {
		return nil
	}
	pub := u.Public()
	return &pub
}

func (db *MockDatabase) projectViewLocked(p models.Project) models.ProjectView {
	creator := p.CreatedByID
	return models.ProjectView{Project: p, CreatedBy: db.publicUserLocked(&creator)}
}

func (db *MockDatabase) sceneViewLocked(s models.Scene) models.SceneView {
	return models.SceneView{Scene: s, CreatedBy: db.publicUserLocked(s.GeneratedBy)}
}

func (db *MockDatabase) assetViewLocked(a models.Asset) models.AssetView {
	return models.AssetView{Asset: a, UploadedBy: db.publicUserLocked(a.UploadedByID)}
}

func (db *MockDatabase) chapterViewLocked(c models.Chapter) models.ChapterView {
	return models.ChapterView{Chapter: c, Storyboards: db.chapterStoryboardsLocked(c.ProjectID, c.ID)}
}

// chapterStoryboardsLocked lists a chapter's storyboards by order_index, then id.
func (db *MockDatabase) chapterStoryboardsLocked(projectID, chapterID int) []models.Storyboard {
	boards := []models.Storyboard{}
	for _, sb := range db.st.storyboards {
		if sb.ProjectID == projectID && sb.InChapter(chapterID) {
			boards = append(boards, sb)
		}
	}
	sort.Slice(boards, func(i, j int) bool {
		if boards[i].OrderIndex != boards[j].OrderIndex {
			return boards[i].OrderIndex < boards[j].OrderIndex
		}
		return boards[i].ID < boards[j].ID
	})
	return boards
}

// newestFirst orders by created_at descending; equal timestamps put the higher id first.
func newestFirst(ai, aj time.Time, idi, idj int) bool {
	if !ai.Equal(aj) {
		return ai.After(aj)
	}
	return idi > idj
}
