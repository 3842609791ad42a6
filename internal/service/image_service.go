package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"commusics/internal/config"
	"commusics/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageUploadDir       = "/tmp/commusics/uploads/images"
	DefaultImageMaxUploadSizeMB = 10
	JPEGQuality                 = 82
	WebPQuality                 = 70
)

// Image kinds accepted by Upload. The kind picks the resize bound.
const (
	ImageKindAvatar = "avatar"
	ImageKindHeader = "header"
)

var kindMaxSize = map[string]int{
	ImageKindAvatar: 512,
	ImageKindHeader: 1500,
}

type UploadImageInput struct {
	UserID      uint
	Kind        string
	Filename    string
	ContentType string
	Content     []byte
}

// UploadedImage points at the stored master files.
type UploadedImage struct {
	Hash    string `json:"hash"`
	URL     string `json:"url"`
	WebPURL string `json:"webp_url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ImageService validates, resizes, and stores profile images. Every
// upload is written twice, JPEG for compatibility and WebP for size.
type ImageService struct {
	uploadDir          string
	mediaBaseURL       string
	maxUploadSizeBytes int64
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	mediaBaseURL := ""
	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		mediaBaseURL = strings.TrimSuffix(cfg.MediaBaseURL, "/")
	}
	return &ImageService{
		uploadDir:          uploadDir,
		mediaBaseURL:       mediaBaseURL,
		maxUploadSizeBytes: DefaultImageMaxUploadSizeMB * 1024 * 1024,
	}
}

func (s *ImageService) Upload(in UploadImageInput) (*UploadedImage, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	maxSize, ok := kindMaxSize[in.Kind]
	if !ok {
		return nil, models.NewValidationError("Invalid image kind")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	master := resizeToFit(decoded, maxSize, maxSize)

	encodedJPG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	encodedWebP, err := encodeWebP(master, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	hash := buildDeterministicImageHash(in.UserID, encodedJPG)
	jpgRel := filepath.ToSlash(filepath.Join(hash, "master.jpg"))
	webpRel := filepath.ToSlash(filepath.Join(hash, "master.webp"))
	jpgAbs := filepath.Join(s.uploadDir, jpgRel)
	webpAbs := filepath.Join(s.uploadDir, webpRel)

	if err := writeBytesToFile(jpgAbs, encodedJPG); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := writeBytesToFile(webpAbs, encodedWebP); err != nil {
		_ = os.Remove(jpgAbs)
		return nil, models.NewInternalError(err)
	}

	bounds := master.Bounds()
	return &UploadedImage{
		Hash:    hash,
		URL:     s.publicURL(jpgRel),
		WebPURL: s.publicURL(webpRel),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}, nil
}

// ResolveForServing maps a validated hash and variant to the derivative
// on disk. Both parameters come from the URL, so anything outside the
// known variants is rejected before touching the filesystem.
func (s *ImageService) ResolveForServing(hash, variant string) (string, error) {
	if !isValidImageHash(hash) {
		return "", models.NewValidationError("Invalid image hash")
	}
	if variant != "master.jpg" && variant != "master.webp" {
		return "", models.NewValidationError("Unknown image variant")
	}
	fullPath := filepath.Join(s.uploadDir, hash, variant)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Image", hash)
		}
		return "", models.NewInternalError(err)
	}
	return fullPath, nil
}

func (s *ImageService) publicURL(rel string) string {
	return fmt.Sprintf("%s/media/i/%s", s.mediaBaseURL, rel)
}

// isValidImageHash checks that the hash is strictly lowercase hex.
// This prevents path traversal via crafted hash parameters.
func isValidImageHash(hash string) bool {
	if len(hash) == 0 || len(hash) > 128 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

func buildDeterministicImageHash(userID uint, content []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
