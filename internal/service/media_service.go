package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/entity"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/pkg/events"
)

// MediaURLPrefix is where the media directory is served.
const MediaURLPrefix = "/static/music"

const transcriptTimeLayout = "20060102_150405"

var allowedAudioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
	".ogg": true,
}

// IsAllowedAudio reports whether filename has an accepted audio extension.
func IsAllowedAudio(filename string) bool {
	return allowedAudioExtensions[strings.ToLower(filepath.Ext(filename))]
}

type IMediaService interface {
	EnsureDir() error
	SaveMusic(ctx context.Context, filename string, src io.Reader) (*entity.SavedFile, error)
	SaveTranscript(ctx context.Context, req *dto.AudiobookRequest) (*entity.SavedFile, error)
	ListLocalFiles() ([]dto.LocalFile, error)
}

type MediaOption func(*mediaService)

// WithClock overrides the clock used to name transcript files.
func WithClock(now func() time.Time) MediaOption {
	return func(s *mediaService) { s.now = now }
}

type mediaService struct {
	dir       string
	now       func() time.Time
	publisher IPublisherService
	logger    logger.ILogger
}

func NewMediaService(dir string, publisher IPublisherService, log logger.ILogger, opts ...MediaOption) IMediaService {
	s := &mediaService{
		dir:       dir,
		now:       time.Now,
		publisher: publisher,
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *mediaService) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperror.FileIO(err)
	}
	return nil
}

// SaveMusic stores src under the base name of filename. An existing file of
// the same name is overwritten.
func (s *mediaService) SaveMusic(ctx context.Context, filename string, src io.Reader) (*entity.SavedFile, error) {
	name := baseName(filename)
	if name == "" || src == nil {
		return nil, apperror.Validation(constant.MsgNoFileSelected)
	}
	if !IsAllowedAudio(name) {
		return nil, apperror.Validation(constant.MsgInvalidAudioType)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperror.FileIO(err)
	}

	saved, err := s.write(name, data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("MediaService", "Music file saved", map[string]interface{}{"file": saved.Filename, "size": saved.Size})
	publishActivity(ctx, s.publisher, s.logger, "MediaService", events.TypeMusicUploaded, map[string]interface{}{
		"filename": saved.Filename,
		"size":     saved.Size,
	})
	return saved, nil
}

// SaveTranscript writes the audiobook text to a file named after the current
// second. Two saves within the same second share a name and the later wins.
func (s *mediaService) SaveTranscript(ctx context.Context, req *dto.AudiobookRequest) (*entity.SavedFile, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	req.ApplyDefaults()

	name := fmt.Sprintf("audiobook_text_%s.txt", s.now().Format(transcriptTimeLayout))
	content := fmt.Sprintf("Audiobook Content (%s voice, %s speed):\n\n%s", req.VoiceType, req.ReadingSpeed, req.TextContent)

	saved, err := s.write(name, []byte(content))
	if err != nil {
		return nil, err
	}

	s.logger.Info("MediaService", "Audiobook transcript saved", map[string]interface{}{"file": saved.Filename})
	publishActivity(ctx, s.publisher, s.logger, "MediaService", events.TypeTranscriptSaved, map[string]interface{}{
		"filename":      saved.Filename,
		"voice_type":    req.VoiceType,
		"reading_speed": req.ReadingSpeed,
	})
	return saved, nil
}

func (s *mediaService) ListLocalFiles() ([]dto.LocalFile, error) {
	files := []dto.LocalFile{}

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return files, nil
	}
	if err != nil {
		return nil, apperror.FileIO(err)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() || !IsAllowedAudio(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, dto.LocalFile{
			Name: e.Name(),
			URL:  path.Join(MediaURLPrefix, url.PathEscape(e.Name())),
			Size: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (s *mediaService) write(name string, data []byte) (*entity.SavedFile, error) {
	if err := s.EnsureDir(); err != nil {
		return nil, err
	}
	full := filepath.Join(s.dir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		s.logger.Error("MediaService", "Failed to write file", map[string]interface{}{"path": full, "error": err.Error()})
		return nil, apperror.FileIO(err)
	}
	return &entity.SavedFile{Filename: name, Path: full, Size: int64(len(data))}, nil
}

// baseName strips any client-supplied directory, including Windows-style
// paths some browsers send.
func baseName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
