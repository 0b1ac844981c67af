package database

import (
	"sort"
	"strings"

	"aigc-studio-mock-api/pkg/models"
)

// projectLocked returns the project when it exists inside the caller's organization.
func (db *MockDatabase) projectLocked(orgID, projectID int) (models.Project, error) {
	p, ok := db.st.projects[projectID]
	if !ok || p.OrganizationID != orgID {
		return models.Project{}, notFound("Project")
	}
	return p, nil
}

// ListProjects 列出组织项目，search 对名称做大小写不敏感的子串匹配，按创建时间倒序
func (db *MockDatabase) ListProjects(orgID int, search string) ([]models.ProjectView, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	needle := strings.ToLower(search)
	projects := []models.Project{}
	for _, p := range db.st.projects {
		if p.OrganizationID != orgID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		return newestFirst(projects[i].CreatedAt, projects[j].CreatedAt, projects[i].ID, projects[j].ID)
	})

	views := make([]models.ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, db.projectViewLocked(p))
	}
	return views, nil
}

// CreateProject 创建项目。status 默认 draft，prompt 默认空串，cover_image 缺省时使用 defaultCover
func (db *MockDatabase) CreateProject(creator models.User, req models.ProjectCreateRequest, defaultCover string) (models.ProjectView, error) {
	if req.Name == "" || req.ProjectType == "" {
		return models.ProjectView{}, newError(ErrValidation, "name and project_type are required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	p := models.Project{
		ID:              db.ids.next(kindProjects),
		Name:            req.Name,
		ProjectType:     req.ProjectType,
		Status:          models.ProjectStatusDraft,
		Description:     req.Description,
		CoverImage:      defaultCover,
		VideoScale:      req.VideoScale,
		VideoResolution: req.VideoResolution,
		OrganizationID:  creator.OrganizationID,
		CreatedByID:     creator.ID,
		CreatedAt:       db.now(),
	}
	if req.Status != nil && *req.Status != "" {
		p.Status = *req.Status
	}
	if req.Prompt != nil {
		p.Prompt = *req.Prompt
	}
	if req.CoverImage != nil && *req.CoverImage != "" {
		p.CoverImage = *req.CoverImage
	}
	db.st.projects[p.ID] = p
	db.persistLocked()
	return db.projectViewLocked(p), nil
}

// GetProject 获取项目
func (db *MockDatabase) GetProject(orgID, projectID int) (models.ProjectView, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	p, err := db.projectLocked(orgID, projectID)
	if err != nil {
		return models.ProjectView{}, err
	}
	return db.projectViewLocked(p), nil
}

// UpdateProject 更新项目（仅覆盖提供的字段）
func (db *MockDatabase) UpdateProject(orgID, projectID int, req models.ProjectUpdateRequest) (models.ProjectView, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, err := db.projectLocked(orgID, projectID)
	if err != nil {
		return models.ProjectView{}, err
	}
	req.Apply(&p)
	db.st.projects[projectID] = p
	db.persistLocked()
	return db.projectViewLocked(p), nil
}

// DeleteProject 删除项目并级联删除其章节、分镜、角色与场景
func (db *MockDatabase) DeleteProject(orgID, projectID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return err
	}
	for id, c := range db.st.chapters {
		if c.ProjectID == projectID {
			delete(db.st.chapters, id)
		}
	}
	for id, sb := range db.st.storyboards {
		if sb.ProjectID == projectID {
			delete(db.st.storyboards, id)
		}
	}
	for id, ch := range db.st.characters {
		if ch.ProjectID == projectID {
			delete(db.st.characters, id)
		}
	}
	for id, s := range db.st.scenes {
		if s.ProjectID == projectID {
			delete(db.st.scenes, id)
		}
	}
	delete(db.st.projects, projectID)
	db.persistLocked()
	return nil
}

// ListScenes 列出项目场景，按创建时间升序
func (db *MockDatabase) ListScenes(orgID, projectID int) ([]models.SceneView, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return nil, err
	}
	scenes := []models.Scene{}
	for _, s := range db.st.scenes {
		if s.ProjectID == projectID {
			scenes = append(scenes, s)
		}
	}
	sort.Slice(scenes, func(i, j int) bool {
		if !scenes[i].CreatedAt.Equal(scenes[j].CreatedAt) {
			return scenes[i].CreatedAt.Before(scenes[j].CreatedAt)
		}
		return scenes[i].ID < scenes[j].ID
	})

	views := make([]models.SceneView, 0, len(scenes))
	for _, s := range scenes {
		views = append(views, db.sceneViewLocked(s))
	}
	return views, nil
}
