package dto

const (
	DefaultVoiceType    = "male"
	DefaultReadingSpeed = "normal"
)

type AudiobookRequest struct {
	TextContent  string `form:"text_content" validate:"notblank" msg:"Please enter text content to convert to audio."`
	VoiceType    string `form:"voice_type"`
	ReadingSpeed string `form:"reading_speed"`
}

// ApplyDefaults fills in voice and speed when the form left them empty.
func (r *AudiobookRequest) ApplyDefaults() {
	if r.VoiceType == "" {
		r.VoiceType = DefaultVoiceType
	}
	if r.ReadingSpeed == "" {
		r.ReadingSpeed = DefaultReadingSpeed
	}
}

type LocalFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}
