package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/simulate"
	"aigc-studio-mock-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	snap, err := database.ReadSnapshotFile("../mock_data/data.json")
	require.NoError(t, err)

	tokens := &utils.SequentialTokenSource{}
	db := database.NewMockDatabaseFromSnapshot(snap, database.WithTokenSource(tokens))
	sim, err := simulate.New(tokens, nil)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:    "development",
		AllowCORS:      true,
		AllowedOrigins: []string{"*"},
		JWTSecret:      "router-test-secret",
		StorageBaseURL: "https://oss.test",
		PresignTTL:     time.Minute,
		MaxUploadBytes: 1 << 20,
	}

	router := NewRouter(Dependencies{
		Config:    cfg,
		DB:        db,
		Simulator: sim,
		Tokens:    tokens,
		Logger:    zap.NewNop(),
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, rec, &resp)
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}
	decode(t, rec, &body)
	assert.NotEmpty(t, body.Detail)
	return body.Code
}

func TestHealthAndFallbacks(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]interface{}
	decode(t, rec, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "disabled", health["persistence"])

	rec = s.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))

	rec = s.do(http.MethodPut, "/api/plans", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRegisterLoginAndCreateProject(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":             "new@studio.test",
		"password":          "pw-123456",
		"organization_name": "New Studio",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var registered struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	decode(t, rec, &registered)
	assert.Equal(t, "mock-token-000000000001", registered.Token)
	assert.Equal(t, "new", registered.User["username"])
	assert.Equal(t, "admin", registered.User["role"])
	assert.NotContains(t, registered.User, "password")

	// 再次登录复用已有 token
	assert.Equal(t, registered.Token, s.login("new@studio.test", "pw-123456"))

	rec = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":             "new@studio.test",
		"password":          "x",
		"organization_name": "Dup",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))

	rec = s.do(http.MethodPost, "/api/projects", registered.Token, map[string]string{
		"name":         "First",
		"project_type": "static",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var project map[string]interface{}
	decode(t, rec, &project)
	assert.Equal(t, "draft", project["status"])
	assert.Equal(t, "http://example.com/assets/project_cover.png", project["cover_image"])
	createdBy, ok := project["created_by"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, registered.User["id"], createdBy["id"])
	assert.NotContains(t, createdBy, "password")

	rec = s.do(http.MethodGet, "/api/projects", registered.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []map[string]interface{}
	decode(t, rec, &projects)
	assert.Len(t, projects, 1)
}

func TestLoginVariants(t *testing.T) {
	s := newTestServer(t)

	t.Run("form login by phone", func(t *testing.T) {
		form := url.Values{"username": {"13800138000"}, "password": {"password123"}}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("oauth token endpoint", func(t *testing.T) {
		form := url.Values{"username": {"org2_user"}, "password": {"test123456"}}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp map[string]interface{}
		decode(t, rec, &resp)
		assert.Equal(t, "bearer", resp["token_type"])
		assert.True(t, strings.HasPrefix(resp["access_token"].(string), "mock-token-"))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "org1_admin", "password": "nope"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("inactive user", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "org1_disabled", "password": "password123"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "org1_admin"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	})
}

func TestAuthAndAdminGuards(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/auth/me", "mock-token-unknown", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	editor := s.login("org1_editor", "password123")
	rec = s.do(http.MethodGet, "/api/users", editor, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodGet, "/api/settings/api-keys", editor, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := s.login("org1_admin", "password123")
	rec = s.do(http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]interface{}
	decode(t, rec, &users)
	for _, u := range users {
		assert.EqualValues(t, 1, u["organization_id"])
		assert.NotContains(t, u, "password")
	}

	rec = s.do(http.MethodPatch, "/api/users/me", editor, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/api/users/me", editor, map[string]string{"display_name": "新编辑"})
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]interface{}
	decode(t, rec, &me)
	assert.Equal(t, "新编辑", me["display_name"])

	// 删除用户后其 token 立即失效
	rec = s.do(http.MethodDelete, "/api/users/2", admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/api/auth/me", editor, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrganizationScoping(t *testing.T) {
	s := newTestServer(t)
	org1 := s.login("org1_admin", "password123")
	org2 := s.login("org2_user", "test123456")

	rec := s.do(http.MethodGet, "/api/projects/2", org1, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodGet, "/api/projects/1", org2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodDelete, "/api/projects/1", org2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodGet, "/api/projects/1/characters", org2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/projects/abc", org1, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/organizations", org2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orgs []map[string]interface{}
	decode(t, rec, &orgs)
	require.Len(t, orgs, 1)
	assert.EqualValues(t, 2, orgs[0]["id"])
}

func TestChapterSplitAndStoryboards(t *testing.T) {
	s := newTestServer(t)
	token := s.login("org1_admin", "password123")

	rec := s.do(http.MethodPost, "/api/projects/1/chapters/1/split", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created []map[string]interface{}
	decode(t, rec, &created)
	require.Len(t, created, 3)
	assert.EqualValues(t, 1, created[0]["order_index"])

	rec = s.do(http.MethodGet, "/api/projects/1/chapters/1/storyboards", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var storyboards []map[string]interface{}
	decode(t, rec, &storyboards)
	assert.Len(t, storyboards, 4)

	rec = s.do(http.MethodPatch, "/api/projects/1/chapters/1/storyboards/1", token, map[string]string{"dialogue": "改写台词"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/projects/1/storyboards:generate-images", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var task map[string]interface{}
	decode(t, rec, &task)
	assert.Equal(t, "generate_storyboard_images", task["task_type"])
	assert.Equal(t, "queued", task["status"])

	rec = s.do(http.MethodPost, "/api/projects/2/storyboards:generate-videos", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationsMarkRead(t *testing.T) {
	s := newTestServer(t)
	token := s.login("org1_admin", "password123")

	rec := s.do(http.MethodPatch, "/api/notifications/1:read", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var n map[string]interface{}
	decode(t, rec, &n)
	assert.Equal(t, true, n["is_read"])

	org2 := s.login("org2_user", "test123456")
	rec = s.do(http.MethodPatch, "/api/notifications/1:read", org2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStorageUploadAndPresign(t *testing.T) {
	s := newTestServer(t)
	token := s.login("org1_admin", "password123")

	rec := s.do(http.MethodGet, "/api/storage/presign?object_key=2/private.png", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/storage/presign", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/storage/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	up := httptest.NewRecorder()
	s.router.ServeHTTP(up, req)
	require.Equal(t, http.StatusOK, up.Code, up.Body.String())

	var uploaded map[string]interface{}
	decode(t, up, &uploaded)
	key, _ := uploaded["object_key"].(string)
	assert.True(t, strings.HasPrefix(key, "1/upload-"))
	assert.True(t, strings.HasSuffix(key, "-cover.png"))
	assert.EqualValues(t, len("fake-png-bytes"), uploaded["size"])

	rec = s.do(http.MethodGet, "/api/storage/presign?object_key="+url.QueryEscape(key), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var presign map[string]interface{}
	decode(t, rec, &presign)
	assert.Equal(t, "GET", presign["method"])
	assert.True(t, strings.HasPrefix(presign["url"].(string), "https://oss.test/"+key))
}

func TestWechatPaymentFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("org1_admin", "password123")

	rec := s.do(http.MethodPost, "/api/payments/wechat/create", token, map[string]interface{}{"plan_type": "pro", "amount": 9900})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created struct {
		OrderID   string `json:"order_id"`
		QRCodeURL string `json:"qrcode_url"`
	}
	decode(t, rec, &created)
	assert.True(t, strings.HasPrefix(created.OrderID, "ORDER_"))
	assert.True(t, strings.HasPrefix(created.QRCodeURL, "weixin://wxpay/bizpayurl?pr="))

	status := func(tok string) *httptest.ResponseRecorder {
		return s.do(http.MethodGet, "/api/payments/wechat/status/"+created.OrderID, tok, nil)
	}

	rec = status(token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	org2 := s.login("org2_user", "test123456")
	assert.Equal(t, http.StatusNotFound, status(org2).Code)

	rec = s.do(http.MethodPost, "/api/payments/wechat/callback", "", map[string]string{"order_id": created.OrderID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SUCCESS")

	rec = status(token)
	assert.Contains(t, rec.Body.String(), `"status":"paid"`)

	// 未知订单静默忽略
	rec = s.do(http.MethodPost, "/api/payments/wechat/callback", "", map[string]string{"order_id": "ORDER_missing"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlansAndSubscribe(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/plans", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plans []map[string]interface{}
	decode(t, rec, &plans)
	assert.NotEmpty(t, plans)

	token := s.login("org1_admin", "password123")
	rec = s.do(http.MethodPost, "/api/plans/subscribe", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/plans/subscribe?plan_id=1", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sub map[string]interface{}
	decode(t, rec, &sub)
	assert.Equal(t, "active", sub["status"])
	assert.EqualValues(t, 1, sub["organization_id"])

	rec = s.do(http.MethodPost, "/api/plans/subscribe?plan_id=999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasksEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.login("org1_admin", "password123")

	rec := s.do(http.MethodGet, "/api/tasks?limit=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/tasks/text-to-image", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/tasks/text-to-image", token, map[string]string{"prompt": "宫殿夜景"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/tasks/1/retry", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var retried map[string]interface{}
	decode(t, rec, &retried)
	assert.Equal(t, "queued", retried["status"])
	assert.Nil(t, retried["error_message"])
	assert.NotNil(t, retried["retry_token"])

	rec = s.do(http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []map[string]interface{}
	decode(t, rec, &tasks)
	assert.Len(t, tasks, 2)
}

func TestTTSVoices(t *testing.T) {
	s := newTestServer(t)
	token := s.login("org1_admin", "password123")

	rec := s.do(http.MethodGet, "/api/tts/voices?is_support_mix=yes", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/tts/voices", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var voices []map[string]interface{}
	decode(t, rec, &voices)
	assert.Len(t, voices, 3)

	rec = s.do(http.MethodPost, "/api/tts/synthesize", token, map[string]string{"text": "你好"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
