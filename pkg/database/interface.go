package database

import (
	"aigc-studio-mock-api/pkg/models"
)

// DatabaseInterface 定义 handler 依赖的存储访问接口。
// 所有按组织隔离的方法都接收调用方的 organizationID，越权访问统一返回 ErrNotFound。
type DatabaseInterface interface {
	// 认证与会话
	Register(req models.UserRegisterRequest) (string, models.User, error)
	Login(credential, password string) (string, models.User, error)
	Authenticate(token string) (models.User, error)

	// 组织与用户
	GetOrganization(orgID int) (models.Organization, error)
	ListUsers(orgID int) ([]models.User, error)
	CreateUser(orgID int, req models.UserCreateRequest) (models.User, error)
	UpdateMe(userID int, req models.UserUpdateMeRequest) (models.User, error)
	DeleteUser(orgID, userID int) error

	// 项目与场景
	ListProjects(orgID int, search string) ([]models.ProjectView, error)
	CreateProject(creator models.User, req models.ProjectCreateRequest, defaultCover string) (models.ProjectView, error)
	GetProject(orgID, projectID int) (models.ProjectView, error)
	UpdateProject(orgID, projectID int, req models.ProjectUpdateRequest) (models.ProjectView, error)
	DeleteProject(orgID, projectID int) error
	ListScenes(orgID, projectID int) ([]models.SceneView, error)

	// 章节与分镜
	ListChapters(orgID, projectID int) ([]models.ChapterView, error)
	CreateChapter(orgID, projectID int, req models.ChapterCreateRequest) (models.ChapterView, error)
	UpdateChapter(orgID, projectID, chapterID int, req models.ChapterUpdateRequest) (models.ChapterView, error)
	DeleteChapter(orgID, projectID, chapterID int) error
	SplitChapter(orgID, projectID, chapterID int, drafts []models.StoryboardDraft) ([]models.Storyboard, error)
	ListStoryboards(orgID, projectID, chapterID int) ([]models.Storyboard, error)
	UpdateStoryboard(orgID, projectID, chapterID, storyboardID int, req models.StoryboardUpdateRequest) (models.Storyboard, error)

	// 角色
	ListCharacters(orgID, projectID int) ([]models.Character, error)
	GetCharacter(orgID, projectID, characterID int) (models.Character, error)
	CreateCharacter(orgID, projectID int, req models.CharacterCreateRequest) (models.Character, error)
	UpdateCharacter(orgID, projectID, characterID int, req models.CharacterUpdateRequest) (models.Character, error)
	DeleteCharacter(orgID, projectID, characterID int) error
	ImportPortraits(user models.User, projectID, characterID int) ([]models.ImportedPortrait, error)

	// 素材与对象存储
	ListAssets(orgID int, filter AssetFilter) ([]models.AssetView, error)
	CreateAsset(user models.User, req models.AssetCreateRequest) (models.AssetView, error)
	UpdateAsset(orgID, assetID int, req models.AssetUpdateRequest) (models.AssetView, error)
	DeleteAsset(orgID, assetID int) error
	PutStorageObject(obj models.StorageObject) error
	CanAccessObject(orgID int, objectKey string) bool

	// 任务
	ListTasks(orgID int, status string) ([]models.Task, error)
	GetTask(orgID, taskID int) (models.Task, error)
	CreateTask(orgID int, taskType string, payload map[string]interface{}) (models.Task, error)
	CreateProjectTask(orgID, projectID int, taskType string) (models.Task, error)
	RetryTask(orgID, taskID int) (models.Task, error)
	GenerateCharacterImages(orgID int, req models.CharacterImageTaskRequest, portraits []models.Portrait) (models.Task, error)

	// 通知
	ListNotifications(orgID int) ([]models.Notification, error)
	MarkNotificationRead(orgID, notificationID int) (models.Notification, error)

	// 套餐与订阅
	ListPlans() ([]models.Plan, error)
	GetPlan(planID int) (models.Plan, error)
	CreatePlan(req models.PlanCreateRequest) (models.Plan, error)
	UpdatePlan(planID int, req models.PlanUpdateRequest) (models.Plan, error)
	DeletePlan(planID int) error
	Subscribe(orgID, planID int) (models.Subscription, error)

	// 支付
	CreatePayment(orgID int, req models.PaymentCreateRequest) (models.Payment, string, error)
	GetPayment(orgID int, orderID string) (models.Payment, error)
	UpdatePaymentStatus(orderID string, status models.PaymentStatus) bool

	// API Key
	ListAPIKeys(orgID int) ([]models.APIKey, error)
	CreateAPIKey(orgID int, req models.APIKeyCreateRequest) (models.APIKey, error)
	UpdateAPIKey(orgID, keyID int, req models.APIKeyUpdateRequest) (models.APIKey, error)
	DeleteAPIKey(orgID, keyID int) error

	// TTS 音色
	ListVoices(filter models.VoiceFilter) ([]models.Voice, error)

	// 重新加载快照
	Reload() error

	// 健康检查
	HealthCheck() error

	// 关闭连接
	Close() error
}

// AssetFilter 素材列表过滤条件
type AssetFilter struct {
	AssetType string
	Search    string
}

// Persister 持久化完整快照。Save 在存储锁内被调用
type Persister interface {
	Save(snap *Snapshot) error
	Name() string
	Close() error
}

// DatabaseConfig 存储配置
type DatabaseConfig struct {
	DataPath       string
	PersistChanges bool
	PostgresDSN    string
}

// NewPersister 根据配置选择持久化实现：未开启持久化时返回 nil；
// 配置了 POSTGRES_DSN 时写入 PostgreSQL，否则回写快照文件
func NewPersister(config DatabaseConfig) (Persister, error) {
	if !config.PersistChanges {
		return nil, nil
	}
	if config.PostgresDSN != "" {
		return NewPostgresPersister(config.PostgresDSN)
	}
	return NewFilePersister(config.DataPath), nil
}
