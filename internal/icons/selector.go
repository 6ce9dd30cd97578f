package icons

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/metrics"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 512 << 10
)

var (
	ErrUnknownIcon  = errors.New("icon is not in the catalog")
	ErrBusy         = errors.New("an icon import is already in progress")
	ErrTooLarge     = errors.New("icon exceeds the size limit")
	ErrNotImage     = errors.New("file is not an image")
	ErrInvalidJSON  = errors.New(`icon JSON must contain exactly one of "iconName", "svg" or "dataUrl"`)
	ErrInvalidValue = errors.New("icon JSON value is empty or malformed")
)

// Options configure a Selector.
type Options struct {
	// OnSelectIcon receives either a catalog identifier or a data URL.
	OnSelectIcon func(value string)
	Client       *http.Client
	Timeout      time.Duration
	MaxBytes     int64
}

// Selector tracks the chosen icon and the state of imports.
type Selector struct {
	opts Options

	mu       sync.Mutex
	selected string
	errMsg   string
	loading  bool
}

func NewSelector(opts Options) *Selector {
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	return &Selector{opts: opts}
}

// Selected returns the current value.
func (s *Selector) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Error returns the message of the last failed action, or "".
func (s *Selector) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Loading reports whether a URL import is in flight.
func (s *Selector) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Select picks a catalog icon.
func (s *Selector) Select(name string) error {
	name = strings.TrimSpace(name)
	if !InCatalog(name) {
		return s.fail("catalog", fmt.Errorf("%w: %q", ErrUnknownIcon, name))
	}
	return s.choose("catalog", name)
}

// ImportFile turns an uploaded image into a data URL. An empty contentType
// is sniffed from data.
func (s *Selector) ImportFile(filename, contentType string, data []byte) (string, error) {
	v, err := s.toDataURL(contentType, data)
	if err != nil {
		return "", s.fail("file", fmt.Errorf("%s: %w", filename, err))
	}
	return v, s.choose("file", v)
}

// ImportURL fetches a remote image and selects it as a data URL. Only one
// import runs at a time; the loading flag is cleared on every outcome.
func (s *Selector) ImportURL(ctx context.Context, url string) (string, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	data, contentType, err := s.fetch(ctx, url)
	if err != nil {
		logger.Warnf("icons: import from %s failed: %v", url, err)
		return "", s.fail("url", err)
	}
	v, err := s.toDataURL(contentType, data)
	if err != nil {
		return "", s.fail("url", err)
	}
	return v, s.choose("url", v)
}

// ImportJSON accepts {"iconName": ...}, {"svg": ...} or {"dataUrl": ...}.
// Any other shape leaves the selection unchanged and sets Error.
func (s *Selector) ImportJSON(raw []byte) (string, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || len(m) != 1 {
		return "", s.fail("json", ErrInvalidJSON)
	}
	var key string
	var val string
	for k, v := range m {
		key = k
		if err := json.Unmarshal(v, &val); err != nil {
			return "", s.fail("json", ErrInvalidValue)
		}
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return "", s.fail("json", ErrInvalidValue)
	}
	var out string
	switch key {
	case "iconName":
		out = val
	case "svg":
		if !strings.Contains(strings.ToLower(val), "<svg") {
			return "", s.fail("json", ErrInvalidValue)
		}
		out = "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(val))
	case "dataUrl":
		if !strings.HasPrefix(val, "data:") {
			return "", s.fail("json", ErrInvalidValue)
		}
		out = val
	default:
		return "", s.fail("json", ErrInvalidJSON)
	}
	return out, s.choose("json", out)
}

func (s *Selector) fetch(ctx context.Context, url string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.opts.Client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch icon: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, s.opts.MaxBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > s.opts.MaxBytes {
		return nil, "", ErrTooLarge
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (s *Selector) toDataURL(contentType string, data []byte) (string, error) {
	if int64(len(data)) > s.opts.MaxBytes {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", ErrNotImage
	}
	ct := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
		if strings.HasPrefix(ct, "text/") && strings.Contains(strings.ToLower(string(data)), "<svg") {
			ct = "image/svg+xml"
		}
		ct = strings.SplitN(ct, ";", 2)[0]
	}
	if !strings.HasPrefix(ct, "image/") {
		return "", ErrNotImage
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *Selector) choose(source, value string) error {
	s.mu.Lock()
	s.selected = value
	s.errMsg = ""
	cb := s.opts.OnSelectIcon
	s.mu.Unlock()
	metrics.IconImports.WithLabelValues(source, "ok").Inc()
	if cb != nil {
		cb(value)
	}
	return nil
}

func (s *Selector) fail(source string, err error) error {
	s.mu.Lock()
	s.errMsg = err.Error()
	s.mu.Unlock()
	metrics.IconImports.WithLabelValues(source, "error").Inc()
	return err
}
