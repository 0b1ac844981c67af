package database

import (
	"sort"

	"aigc-studio-mock-api/pkg/metrics"
	"aigc-studio-mock-api/pkg/models"
)

const (
	retryTokenPrefix = "retry"
	retryTokenLength = 12
)

// newTaskLocked inserts a queued task. Tasks are never advanced past queued.
func (db *MockDatabase) newTaskLocked(orgID int, taskType string, payload map[string]interface{}) models.Task {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	t := models.Task{
		ID:             db.ids.next(kindTasks),
		OrganizationID: orgID,
		TaskType:       taskType,
		Status:         models.TaskQueued,
		Payload:        payload,
		Progress:       0,
		CreatedAt:      db.now(),
	}
	db.st.tasks[t.ID] = t
	metrics.TasksCreatedTotal.WithLabelValues(taskType).Inc()
	return t
}

// ListTasks 列出组织任务，可按状态过滤，按创建时间倒序
func (db *MockDatabase) ListTasks(orgID int, status string) ([]models.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tasks := []models.Task{}
	for _, t := range db.st.tasks {
		if t.OrganizationID != orgID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return newestFirst(tasks[i].CreatedAt, tasks[j].CreatedAt, tasks[i].ID, tasks[j].ID)
	})
	return tasks, nil
}

// GetTask 获取任务
func (db *MockDatabase) GetTask(orgID, taskID int) (models.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.st.tasks[taskID]
	if !ok || t.OrganizationID != orgID {
		return models.Task{}, notFound("Task")
	}
	return t, nil
}

// CreateTask 创建排队中的任务
func (db *MockDatabase) CreateTask(orgID int, taskType string, payload map[string]interface{}) (models.Task, error) {
	if taskType == "" {
		return models.Task{}, newError(ErrValidation, "task_type is required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	t := db.newTaskLocked(orgID, taskType, payload)
	db.persistLocked()
	return t, nil
}

// CreateProjectTask 为项目创建生成类任务，payload 为 {"project_id": id}
func (db *MockDatabase) CreateProjectTask(orgID, projectID int, taskType string) (models.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.projectLocked(orgID, projectID); err != nil {
		return models.Task{}, err
	}
	t := db.newTaskLocked(orgID, taskType, map[string]interface{}{"project_id": projectID})
	db.persistLocked()
	return t, nil
}

// RetryTask 重置任务为排队状态并生成新的 retry token
func (db *MockDatabase) RetryTask(orgID, taskID int) (models.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	t, ok := db.st.tasks[taskID]
	if !ok || t.OrganizationID != orgID {
		return models.Task{}, notFound("Task")
	}
	retry := db.tokenSource.Token(retryTokenPrefix, retryTokenLength)
	t.Status = models.TaskQueued
	t.Progress = 0
	t.ErrorMessage = nil
	t.RetryToken = &retry
	t.CreatedAt = db.now()
	db.st.tasks[taskID] = t
	db.persistLocked()
	return t, nil
}

// GenerateCharacterImages 创建角色立绘任务，并直接用生成的立绘覆盖角色 portraits。
// 角色必须属于调用方组织的项目
func (db *MockDatabase) GenerateCharacterImages(orgID int, req models.CharacterImageTaskRequest, portraits []models.Portrait) (models.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.st.characters[req.CharacterID]
	if !ok {
		return models.Task{}, notFound("Character")
	}
	if _, err := db.projectLocked(orgID, c.ProjectID); err != nil {
		return models.Task{}, notFound("Character")
	}

	t := db.newTaskLocked(orgID, models.TaskGenerateCharacterImages, req.Payload())
	c.Portraits = append([]models.Portrait{}, portraits...)
	c.UpdatedAt = db.now()
	db.st.characters[c.ID] = c
	db.persistLocked()
	return t, nil
}
