package media

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

// Store persists opaque image payloads and hands back a reference URL.
// The rest of the system only ever stores and forwards that reference.
type Store interface {
	SaveDataURI(dataURI string, subdir string) (url string, err error)
}

type store struct {
	log     *logger.Logger
	root    string
	baseURL string
}

func NewStore(log *logger.Logger, root, baseURL string) Store {
	return &store{
		log:     log.With("service", "MediaStore"),
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

var extByMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveDataURI accepts a "data:image/...;base64,..." payload, writes the
// decoded bytes under root/subdir and returns the serving URL. The filename
// is content-addressed so re-uploading the same image is a no-op on disk.
func (s *store) SaveDataURI(dataURI string, subdir string) (string, error) {
	mime, raw, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	ext, ok := extByMIME[mime]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", mime)
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir media dir: %w", err)
	}

	h := sha256.Sum256(raw)
	name := hex.EncodeToString(h[:])[:20] + ext
	path := filepath.Join(dir, name)
	if _, statErr := os.Stat(path); statErr != nil {
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return "", fmt.Errorf("write image: %w", err)
		}
	}

	url := s.baseURL + "/" + subdir + "/" + name
	s.log.Debug("Stored image", "bytes", len(raw), "url", url)
	return url, nil
}

func decodeDataURI(dataURI string) (mime string, raw []byte, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	rest := dataURI[len("data:"):]
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}
	mime = rest[:semi]
	raw, err = base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("decode image payload: %w", err)
	}
	if len(raw) == 0 {
		return "", nil, fmt.Errorf("empty image payload")
	}
	return mime, raw, nil
}
