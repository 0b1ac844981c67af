// Package simulate produces the canned side effects of generation, agent, payment
// and TTS endpoints. Nothing here calls an external provider.
package simulate

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed canned.yaml
var cannedYAML []byte

// Content 固定模拟内容
type Content struct {
	SplitTemplates []models.StoryboardDraft `yaml:"split_templates"`
	Workflow       struct {
		DefaultID string                 `yaml:"default_id"`
		Events    []models.WorkflowEvent `yaml:"events"`
	} `yaml:"workflow"`
	GeneratedCharacters struct {
		EventsCount int                         `yaml:"events_count"`
		Characters  []models.GeneratedCharacter `yaml:"characters"`
	} `yaml:"generated_characters"`
	Portraits struct {
		URLTemplate string   `yaml:"url_template"`
		Angles      []string `yaml:"angles"`
	} `yaml:"portraits"`
	TTS struct {
		AudioURLTemplate   string `yaml:"audio_url_template"`
		AudioContentBase64 string `yaml:"audio_content_base64"`
	} `yaml:"tts"`
	Wechat struct {
		NativeURL string `yaml:"native_url"`
	} `yaml:"wechat"`
}

// Parse decodes canned content from YAML.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse canned content: %w", err)
	}
	if len(c.SplitTemplates) == 0 {
		return nil, fmt.Errorf("canned content has no split templates")
	}
	return &c, nil
}

// Simulator 生成模拟副作用
type Simulator struct {
	content *Content
	tokens  utils.TokenSource
	clock   func() time.Time
}

// New 使用内嵌的固定内容创建模拟器
func New(tokens utils.TokenSource, clock func() time.Time) (*Simulator, error) {
	content, err := Parse(cannedYAML)
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = utils.RandomTokenSource{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &Simulator{content: content, tokens: tokens, clock: clock}, nil
}

// SplitDrafts 章节拆分生成的分镜内容
func (s *Simulator) SplitDrafts() []models.StoryboardDraft {
	return append([]models.StoryboardDraft{}, s.content.SplitTemplates...)
}

// RunWorkflow 返回固定的工作流事件
func (s *Simulator) RunWorkflow(req models.WorkflowRunRequest) models.WorkflowRunResponse {
	workflowID := s.content.Workflow.DefaultID
	if req.WorkflowID != nil && *req.WorkflowID != "" {
		workflowID = *req.WorkflowID
	}
	return models.WorkflowRunResponse{
		WorkflowID: workflowID,
		Events:     append([]models.WorkflowEvent{}, s.content.Workflow.Events...),
	}
}

// GenerateCharacters 返回固定的角色提案
func (s *Simulator) GenerateCharacters(projectID int) models.GenerateCharactersResponse {
	chars := make([]models.GeneratedCharacter, 0, len(s.content.GeneratedCharacters.Characters))
	for _, c := range s.content.GeneratedCharacters.Characters {
		if c.Portraits == nil {
			c.Portraits = []models.Portrait{}
		}
		chars = append(chars, c)
	}
	return models.GenerateCharactersResponse{
		Success:     true,
		Characters:  chars,
		ProjectID:   projectID,
		EventsCount: s.content.GeneratedCharacters.EventsCount,
	}
}

// CharacterPortraits 生成三视角立绘
func (s *Simulator) CharacterPortraits(characterID int) []models.Portrait {
	portraits := make([]models.Portrait, 0, len(s.content.Portraits.Angles))
	for _, angle := range s.content.Portraits.Angles {
		portraits = append(portraits, models.Portrait{
			Src: fmt.Sprintf(s.content.Portraits.URLTemplate, characterID, angle),
			Alt: angle,
		})
	}
	return portraits
}

// Synthesize 返回同步完成的 TTS 结果
func (s *Simulator) Synthesize(orgID int) models.TTSSynthesizeResponse {
	stamp := s.clock().UTC().Format("2006-01-02T15:04:05Z")
	stamp = strings.NewReplacer(":", "", "-", "").Replace(stamp)
	taskID := fmt.Sprintf("tts-%s-%s", stamp, s.tokens.Token("id", 6))
	return models.TTSSynthesizeResponse{
		TaskID:             taskID,
		Status:             models.TaskSucceeded,
		AudioURL:           fmt.Sprintf(s.content.TTS.AudioURLTemplate, orgID, taskID),
		AudioContentBase64: s.content.TTS.AudioContentBase64,
	}
}

// WechatSummary 构造 Native 下单请求摘要；nonce_str 使用 uuid
func (s *Simulator) WechatSummary(payment models.Payment, codeURL string) models.WechatRequestSummary {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	return models.WechatRequestSummary{
		URL:    s.content.Wechat.NativeURL,
		Method: "POST",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: map[string]interface{}{
			"description":  payment.PlanType,
			"out_trade_no": payment.OrderID,
			"nonce_str":    nonce,
			"amount": map[string]interface{}{
				"total":    payment.Amount,
				"currency": "CNY",
			},
		},
		Response: map[string]interface{}{
			"code_url": codeURL,
		},
		CodeURL: codeURL,
	}
}
