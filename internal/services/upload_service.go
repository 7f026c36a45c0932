package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fleetadmin/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	MaxImageSize        = 10 << 20
	DefaultUploadFolder = "car-rental"
)

// Folders the console files images under.
const (
	FolderCarMain        = "car-rental/main"
	FolderCarAdditional  = "car-rental/additional"
	FolderCarDocuments   = "car-rental/documents"
	FolderVendorDocument = "vendors/documents"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ImageFile is a local image about to be uploaded. Size is the declared
// size used for validation; Content is read once.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Close releases Content when it is closable.
func (f ImageFile) Close() error {
	if c, ok := f.Content.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type ValidationError struct {
	File   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.File == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

func ValidateImageFile(f ImageFile) error {
	ct := strings.ToLower(strings.TrimSpace(f.ContentType))
	if !allowedImageTypes[ct] {
		return &ValidationError{File: f.Name, Reason: fmt.Sprintf("unsupported image type %q (allowed: jpeg, png, webp)", f.ContentType)}
	}
	if f.Size > MaxImageSize {
		return &ValidationError{File: f.Name, Reason: fmt.Sprintf("image is %d bytes, limit is %d", f.Size, MaxImageSize)}
	}
	return nil
}

// FileExtension returns the lower-cased extension without the dot.
func FileExtension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// OpenImage builds an ImageFile from disk. The content type comes from the
// extension, falling back to sniffing the first bytes. Callers must Close it.
func OpenImage(path string) (ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageFile{}, fmt.Errorf("opening image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return ImageFile{}, fmt.Errorf("stat image: %w", err)
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		ct = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return ImageFile{}, fmt.Errorf("rewinding image: %w", err)
		}
	}
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	return ImageFile{
		Name:        filepath.Base(path),
		ContentType: ct,
		Size:        info.Size(),
		Content:     f,
	}, nil
}

type UploadConfig struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	// RateLimit caps uploads per second across a fan-out; 0 disables it.
	RateLimit float64
}

// UploadService sends images straight to the asset host. It never sees the
// backend token; the upload preset is the host's own authorization.
type UploadService struct {
	endpoint  string
	cloudName string
	preset    string
	http      *http.Client
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

func NewUploadService(cfg UploadConfig, httpClient *http.Client, logger zerolog.Logger) *UploadService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	s := &UploadService{
		endpoint:  fmt.Sprintf("%s/v1_1/%s/image/upload", strings.TrimRight(cfg.BaseURL, "/"), cfg.CloudName),
		cloudName: cfg.CloudName,
		preset:    cfg.UploadPreset,
		http:      httpClient,
		logger:    logger,
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

func (s *UploadService) UploadImage(ctx context.Context, file ImageFile, folder string) models.UploadOutcome {
	if folder == "" {
		folder = DefaultUploadFolder
	}
	log := s.logger.With().Str("file", file.Name).Str("folder", folder).Logger()

	if err := ValidateImageFile(file); err != nil {
		log.Warn().Err(err).Msg("Image rejected before upload")
		return models.UploadOutcome{Error: err.Error(), Kind: models.KindValidation}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return models.UploadOutcome{Error: err.Error(), Kind: models.KindTransport}
		}
	}

	body, contentType, err := s.buildForm(file, folder)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			log.Warn().Err(err).Msg("Image rejected before upload")
			return models.UploadOutcome{Error: err.Error(), Kind: models.KindValidation}
		}
		log.Error().Err(err).Msg("Building upload form")
		return models.UploadOutcome{Error: err.Error(), Kind: models.KindTransport}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return models.UploadOutcome{Error: err.Error(), Kind: models.KindTransport}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.http.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Asset host upload failed")
		return models.UploadOutcome{Error: err.Error(), Kind: models.KindTransport}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "Upload failed: " + http.StatusText(resp.StatusCode)
		log.Error().Int("status", resp.StatusCode).Msg("Asset host rejected upload")
		return models.UploadOutcome{Error: msg, Kind: models.KindBackendRejected}
	}

	var result models.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Error().Err(err).Msg("Decoding upload response")
		return models.UploadOutcome{Error: fmt.Sprintf("decoding upload response: %v", err), Kind: models.KindTransport}
	}
	if result.SecureURL == "" {
		return models.UploadOutcome{Error: "upload response has no secure_url", Kind: models.KindTransport}
	}

	log.Debug().Str("public_id", result.PublicID).Msg("Image uploaded")
	return models.UploadOutcome{Success: true, Data: &result}
}

// UploadMultiple uploads every file independently and concurrently.
// results[i] always belongs to files[i]; one failure never affects another.
func (s *UploadService) UploadMultiple(ctx context.Context, files []ImageFile, folder string) []models.UploadOutcome {
	results := make([]models.UploadOutcome, len(files))
	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.UploadImage(ctx, files[i], folder)
		}(i)
	}
	wg.Wait()
	return results
}

func (s *UploadService) buildForm(file ImageFile, folder string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	h.Set("Content-Type", file.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if file.Content != nil {
		n, err := io.Copy(part, io.LimitReader(file.Content, MaxImageSize+1))
		if err != nil {
			return nil, "", fmt.Errorf("reading image: %w", err)
		}
		if n > MaxImageSize {
			return nil, "", &ValidationError{File: file.Name, Reason: fmt.Sprintf("image exceeds %d bytes", MaxImageSize)}
		}
	}

	fields := []struct{ key, value string }{
		{"upload_preset", s.preset},
		{"cloud_name", s.cloudName},
		{"folder", folder},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", fmt.Errorf("writing %s: %w", f.key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
