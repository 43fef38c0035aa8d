package res

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ResourceType represents the type of resource
type ResourceType int

const (
	// ResourceTypeUnknown is an unknown resource type
	ResourceTypeUnknown ResourceType = iota
	// ResourceTypeImage is an image resource
	ResourceTypeImage
	// ResourceTypeHTML is an HTML page listing images
	ResourceTypeHTML
	// ResourceTypeOther is any other resource
	ResourceTypeOther
)

// TooLargeError is returned when a resource exceeds the loader size limit
type TooLargeError struct {
	URL   string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	if e.Size < 0 {
		return fmt.Sprintf("resource %s exceeds the %d byte limit", e.URL, e.Limit)
	}
	return fmt.Sprintf("resource %s is %d bytes, limit is %d", e.URL, e.Size, e.Limit)
}

// Resource represents a loaded resource
type Resource struct {
	URL      string
	Type     ResourceType
	Data     []byte
	MimeType string
}

// Loader handles loading resources
type Loader struct {
	// Base URL or file path for resolving relative URLs
	BaseURL string

	// Resource cache
	cache     map[string]*Resource
	cacheLock sync.RWMutex

	// Resource search paths
	searchPaths []string

	// HTTP client for remote resources
	client *http.Client

	// Largest accepted resource in bytes; 0 disables the check
	maxSize int64
}

// NewLoader creates a new resource loader
func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL:     baseURL,
		cache:       make(map[string]*Resource),
		searchPaths: []string{},
		client:      &http.Client{},
	}
}

// SetHTTPClient replaces the client used for remote resources
func (l *Loader) SetHTTPClient(client *http.Client) {
	l.client = client
}

// SetMaxSize limits the size of every loaded resource. Zero or less disables the limit.
func (l *Loader) SetMaxSize(n int64) {
	l.maxSize = n
}

// checkSize returns a *TooLargeError when size is over the limit
func (l *Loader) checkSize(urlStr string, size int64) error {
	if l.maxSize > 0 && size > l.maxSize {
		return &TooLargeError{URL: urlStr, Size: size, Limit: l.maxSize}
	}
	return nil
}

// AddSearchPath adds a directory to search for local resources
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads a resource from a URL or file path
func (l *Loader) Load(ctx context.Context, urlStr string) (*Resource, error) {
	l.cacheLock.RLock()
	if res, ok := l.cache[urlStr]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var (
		res *Resource
		err error
	)
	if strings.HasPrefix(urlStr, "data:") {
		res, err = parseDataURL(urlStr)
		if err == nil {
			err = l.checkSize("data URL", int64(len(res.Data)))
		}
	} else {
		var resolvedURL string
		resolvedURL, err = l.resolveURL(urlStr)
		if err != nil {
			return nil, err
		}
		if isRemote(resolvedURL) {
			res, err = l.loadRemote(ctx, resolvedURL)
		} else {
			res, err = l.loadLocal(resolvedURL)
		}
	}
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[urlStr] = res
	l.cacheLock.Unlock()

	return res, nil
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// parseDataURL parses a data URL (RFC 2397) and returns a Resource.
// Examples:
//
//	data:image/png;base64,<base64>
//	data:image/svg+xml,%3Csvg%3E...
func parseDataURL(u string) (*Resource, error) {
	if !strings.HasPrefix(u, "data:") {
		return nil, fmt.Errorf("not a data URL")
	}
	s := strings.TrimPrefix(u, "data:")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URL")
	}
	meta := parts[0]
	dataPart := parts[1]

	mime := "application/octet-stream"
	isBase64 := false
	if meta != "" {
		comps := strings.Split(meta, ";")
		if comps[0] != "" {
			mime = comps[0]
		}
		for _, c := range comps[1:] {
			if strings.EqualFold(strings.TrimSpace(c), "base64") {
				isBase64 = true
			}
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(dataPart)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = decoded
	} else {
		// The non-base64 form is URL-escaped
		if d, derr := url.PathUnescape(dataPart); derr == nil {
			data = []byte(d)
		} else {
			data = []byte(dataPart)
		}
	}

	r := &Resource{URL: u, Data: data, MimeType: mime}
	r.Type = determineResourceType(mime, "")
	return r, nil
}

// resolveURL resolves a URL relative to the base URL
func (l *Loader) resolveURL(urlStr string) (string, error) {
	if isRemote(urlStr) || filepath.IsAbs(urlStr) {
		return urlStr, nil
	}

	if !isRemote(l.BaseURL) {
		if l.BaseURL == "" {
			return urlStr, nil
		}
		baseDir := filepath.Dir(l.BaseURL)
		return filepath.Join(baseDir, urlStr), nil
	}

	baseURL, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", err
	}

	relURL, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}

	return baseURL.ResolveReference(relURL).String(), nil
}

// loadRemote loads a resource from a remote URL
func (l *Loader) loadRemote(ctx context.Context, urlStr string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	if err := l.checkSize(urlStr, resp.ContentLength); err != nil {
		return nil, err
	}

	body := io.Reader(resp.Body)
	if l.maxSize > 0 {
		// one extra byte tells an exact fit from an overflow
		body = io.LimitReader(resp.Body, l.maxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if l.maxSize > 0 && int64(len(data)) > l.maxSize {
		return nil, &TooLargeError{URL: urlStr, Size: -1, Limit: l.maxSize}
	}

	mimeType := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = determineMimeType(urlPath(urlStr))
	}

	res := &Resource{
		URL:      urlStr,
		Data:     data,
		MimeType: mimeType,
	}
	res.Type = determineResourceType(res.MimeType, urlPath(urlStr))

	return res, nil
}

func urlPath(urlStr string) string {
	if u, err := url.Parse(urlStr); err == nil {
		return u.Path
	}
	return urlStr
}

// loadLocal loads a resource from a local file
func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.loadFromSearchPaths(path)
		}
		return nil, err
	}

	res := &Resource{
		URL:  path,
		Data: data,
	}
	res.MimeType = determineMimeType(path)
	res.Type = determineResourceType(res.MimeType, path)

	return res, nil
}

// readFile stats path before reading it so oversized files are never loaded
func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := l.checkSize(path, info.Size()); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// loadFromSearchPaths tries to load a resource from the search paths
func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	baseFilename := filepath.Base(filename)

	for _, searchPath := range l.searchPaths {
		path := filepath.Join(searchPath, baseFilename)

		data, err := l.readFile(path)
		if err != nil {
			var tooLarge *TooLargeError
			if errors.As(err, &tooLarge) {
				return nil, err
			}
			continue
		}

		res := &Resource{
			URL:  path,
			Data: data,
		}
		res.MimeType = determineMimeType(path)
		res.Type = determineResourceType(res.MimeType, path)

		return res, nil
	}

	return nil, fmt.Errorf("resource not found: %s", filename)
}

// determineMimeType determines the MIME type of a file
func determineMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

// determineResourceType determines the type of a resource
func determineResourceType(mimeType, path string) ResourceType {
	if strings.HasPrefix(mimeType, "image/") {
		return ResourceTypeImage
	}

	if mimeType == "text/html" {
		return ResourceTypeHTML
	}

	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".tiff", ".tif", ".bmp":
		return ResourceTypeImage
	case ".html", ".htm":
		return ResourceTypeHTML
	}

	return ResourceTypeOther
}

// LoadImage loads an image resource
func (l *Loader) LoadImage(ctx context.Context, urlStr string) (*Resource, error) {
	res, err := l.Load(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	if res.Type != ResourceTypeImage {
		return nil, fmt.Errorf("resource is not an image: %s", urlStr)
	}

	return res, nil
}

// LoadHTML loads an HTML resource
func (l *Loader) LoadHTML(ctx context.Context, urlStr string) (*Resource, error) {
	return l.Load(ctx, urlStr)
}

// GetReader returns a reader for a resource
func (r *Resource) GetReader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// GetString returns the resource data as a string
func (r *Resource) GetString() string {
	return string(r.Data)
}
