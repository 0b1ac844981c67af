package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"aigc-studio-mock-api/pkg/config"
	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/simulate"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

type TTSHandler struct {
	config *config.Config
	db     database.DatabaseInterface
	sim    *simulate.Simulator
	log    *zap.Logger
}

func NewTTSHandler(cfg *config.Config, db database.DatabaseInterface, sim *simulate.Simulator, log *zap.Logger) *TTSHandler {
	return &TTSHandler{config: cfg, db: db, sim: sim, log: log}
}

// GET /api/tts/voices?scene_category=&gender=&support_language=&is_support_mix=
func (h *TTSHandler) ListVoices(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	q := r.URL.Query()
	filter := models.VoiceFilter{
		SceneCategory:   q.Get("scene_category"),
		Gender:          q.Get("gender"),
		SupportLanguage: q.Get("support_language"),
	}
	// is_support_mix 为整数，非零即 true
	if raw := q.Get("is_support_mix"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.WriteValidationErrorResponse(w, "is_support_mix must be an integer")
			return
		}
		mix := n != 0
		filter.IsSupportMix = &mix
	}

	voices, err := h.db.ListVoices(filter)
	if err != nil {
		writeStoreError(w, h.log, err)
		return
	}
	utils.WriteSuccessResponse(w, voices)
}

// POST /api/tts/synthesize
func (h *TTSHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.TTSSynthesizeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.WriteValidationErrorResponse(w, "text is required")
		return
	}
	utils.WriteSuccessResponse(w, h.sim.Synthesize(user.OrganizationID))
}
