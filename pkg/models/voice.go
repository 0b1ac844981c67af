package models

// Voice is a TTS voice catalog entry.
type Voice struct {
	VoiceType       string  `json:"voice_type"`
	Name            string  `json:"name"`
	Gender          string  `json:"gender"`
	SceneCategory   string  `json:"scene_category"`
	SupportLanguage string  `json:"support_language"`
	IsSupportMix    bool    `json:"is_support_mix"`
	SampleURL       *string `json:"sample_url,omitempty"`
}

// VoiceFilter selects voices; empty fields match everything.
type VoiceFilter struct {
	SceneCategory   string
	Gender          string
	SupportLanguage string
	IsSupportMix    *bool
}

// Match reports whether v passes every set filter.
func (f VoiceFilter) Match(v Voice) bool {
	if f.SceneCategory != "" && v.SceneCategory != f.SceneCategory {
		return false
	}
	if f.Gender != "" && v.Gender != f.Gender {
		return false
	}
	if f.SupportLanguage != "" && v.SupportLanguage != f.SupportLanguage {
		return false
	}
	return f.IsSupportMix == nil || v.IsSupportMix == *f.IsSupportMix
}

// TTSSynthesizeRequest TTS 合成请求
type TTSSynthesizeRequest struct {
	Text            string                 `json:"text"`
	VoiceType       *string                `json:"voice_type"`
	Emotion         *string                `json:"emotion"`
	Speed           *float64               `json:"speed"`
	Volume          *float64               `json:"volume"`
	SampleRate      *int                   `json:"sample_rate"`
	AudioFormat     *string                `json:"audio_format"`
	WaitForResult   *bool                  `json:"wait_for_result"`
	PollInterval    *float64               `json:"poll_interval"`
	Timeout         *float64               `json:"timeout"`
	DownloadAudio   *bool                  `json:"download_audio"`
	ExtraParameters map[string]interface{} `json:"extra_parameters"`
}

// TTSSynthesizeResponse TTS 合成响应
type TTSSynthesizeResponse struct {
	TaskID             string `json:"task_id"`
	Status             string `json:"status"`
	AudioURL           string `json:"audio_url"`
	AudioContentBase64 string `json:"audio_content_base64"`
}
