package simulate

import (
	"strings"
	"testing"
	"time"

	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 5, 1, 8, 30, 15, 0, time.UTC) }
	sim, err := New(&utils.SequentialTokenSource{}, clock)
	require.NoError(t, err)
	return sim
}

func TestSplitDrafts(t *testing.T) {
	sim := newTestSimulator(t)
	drafts := sim.SplitDrafts()
	require.Len(t, drafts, 3)
	assert.Equal(t, "角色对话内容1", drafts[0].Dialogue)
	assert.Equal(t, "场景描述3", drafts[2].SceneDescription)
}

func TestRunWorkflow(t *testing.T) {
	sim := newTestSimulator(t)

	resp := sim.RunWorkflow(models.WorkflowRunRequest{Input: "hi"})
	assert.Equal(t, "default_workflow", resp.WorkflowID)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, models.WorkflowEvent{Event: "message", Data: "生成的内容...", ID: "event_1"}, resp.Events[0])

	custom := "wf-42"
	assert.Equal(t, "wf-42", sim.RunWorkflow(models.WorkflowRunRequest{WorkflowID: &custom}).WorkflowID)
}

func TestGenerateCharacters(t *testing.T) {
	resp := newTestSimulator(t).GenerateCharacters(7)
	assert.True(t, resp.Success)
	assert.Equal(t, 7, resp.ProjectID)
	assert.Equal(t, 3, resp.EventsCount)
	require.Len(t, resp.Characters, 2)
	assert.Equal(t, "皇帝", resp.Characters[0].DisplayName)
	assert.InDelta(t, 1.1, resp.Characters[1].VoiceSpeed, 1e-9)
	assert.NotNil(t, resp.Characters[0].Portraits)
}

func TestCharacterPortraits(t *testing.T) {
	portraits := newTestSimulator(t).CharacterPortraits(5)
	assert.Equal(t, []models.Portrait{
		{Src: "https://cdn.example.com/characters/5_front.jpg", Alt: "front"},
		{Src: "https://cdn.example.com/characters/5_side.jpg", Alt: "side"},
		{Src: "https://cdn.example.com/characters/5_three-quarter.jpg", Alt: "three-quarter"},
	}, portraits)
}

func TestSynthesize(t *testing.T) {
	resp := newTestSimulator(t).Synthesize(2)
	assert.Equal(t, "tts-20240501T083015Z-id-000001", resp.TaskID)
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, "https://oss.example.com/2/tts/tts-20240501T083015Z-id-000001.mp3", resp.AudioURL)
	assert.True(t, strings.HasPrefix(resp.AudioContentBase64, "UklGR"))
}

func TestWechatSummary(t *testing.T) {
	payment := models.Payment{OrderID: "ORDER_wx-1", PlanType: "pro", Amount: 9900}
	summary := newTestSimulator(t).WechatSummary(payment, "weixin://wxpay/bizpayurl?pr=qr-1")
	assert.Equal(t, "https://api.mch.weixin.qq.com/v3/pay/transactions/native", summary.URL)
	assert.Equal(t, "POST", summary.Method)
	assert.Equal(t, "weixin://wxpay/bizpayurl?pr=qr-1", summary.CodeURL)
	assert.Equal(t, "ORDER_wx-1", summary.Body["out_trade_no"])
	assert.Len(t, summary.Body["nonce_str"], 32)
}

func TestParseRejectsEmptyTemplates(t *testing.T) {
	_, err := Parse([]byte("workflow:\n  default_id: x\n"))
	assert.Error(t, err)
}
