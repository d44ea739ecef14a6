package constant

// User-facing notices and validation messages.
const (
	MsgEnterQuestion      = "Please enter a question"
	MsgEnterMaterial      = "Please enter study material"
	MsgEnterAudiobookText = "Please enter text content to convert to audio."
	MsgNoFileSelected     = "No file selected"
	MsgInvalidAudioType   = "Invalid file type. Please upload MP3, WAV, M4A, or OGG files."
	MsgMusicUploaded      = "Music file \"%s\" uploaded successfully!"
	MsgMusicUploadError   = "Error uploading file: %s"
	MsgTranscriptSaved    = "Audiobook text saved! File: %s. TTS feature will be available in future updates."
	MsgTranscriptError    = "Error generating audiobook: %s"
)

const (
	MsgAIServiceError = "AI service error: %s"
	MsgSearchError    = "Search error: %s"
)
