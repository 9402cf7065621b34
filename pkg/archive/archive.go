// Package archive fetches template archives over HTTP and extracts them.
package archive

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/lerenn/push-issues/pkg/fs"
	"github.com/lerenn/push-issues/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=archive.go -destination=mocks/archive.gen.go -package=mocks

// DefaultTimeout bounds the download of an archive.
const DefaultTimeout = 2 * time.Minute

// Format is a supported archive format.
type Format string

const (
	// FormatZip is a zip archive.
	FormatZip Format = "zip"
	// FormatTar is an uncompressed tar archive.
	FormatTar Format = "tar"
	// FormatTarGz is a gzip-compressed tar archive.
	FormatTarGz Format = "tar.gz"
)

// Fetcher retrieves a template archive and extracts it locally.
type Fetcher interface {
	// Fetch downloads the archive at rawURL and extracts it into a
	// temporary directory. It returns the template root and a cleanup
	// function removing everything it created.
	Fetch(ctx context.Context, rawURL string) (root string, cleanup func(), err error)
}

// NewFetcherParams contains parameters for creating a new Fetcher.
type NewFetcherParams struct {
	FS         fs.FS
	HTTPClient *http.Client
	Logger     logger.Logger
}

type realFetcher struct {
	fs     fs.FS
	client *http.Client
	logger logger.Logger
}

// NewFetcher creates a new Fetcher instance.
func NewFetcher(params NewFetcherParams) Fetcher {
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}
	if params.HTTPClient == nil {
		params.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &realFetcher{
		fs:     params.FS,
		client: params.HTTPClient,
		logger: params.Logger,
	}
}

// IsURL reports whether a template source is an http(s) URL rather than a
// local path.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch downloads and extracts the archive.
func (f *realFetcher) Fetch(ctx context.Context, rawURL string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}

	f.logger.Logf("Downloading template archive %s", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("%w: GET %s: %s", ErrArchive, rawURL, resp.Status)
	}

	format, err := DetectFormat(rawURL, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", nil, err
	}

	dir, err := f.fs.MkdirTemp("", "push-issues-*")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	cleanup := func() {
		if err := f.fs.RemoveAll(dir); err != nil {
			f.logger.Logf("Failed to remove %s: %v", dir, err)
		}
	}

	if err := f.extract(format, resp.Body, dir); err != nil {
		cleanup()
		return "", nil, err
	}

	root, err := f.templateRoot(dir)
	if err != nil {
		cleanup()
		return "", nil, err
	}

	f.logger.Logf("Extracted %s archive to %s", format, root)
	return root, cleanup, nil
}

func (f *realFetcher) extract(format Format, body io.Reader, dest string) error {
	switch format {
	case FormatZip:
		return f.extractZip(body, dest)
	case FormatTarGz:
		return f.extractTarGz(body, dest)
	default:
		return f.extractTar(body, dest)
	}
}

// DetectFormat picks the archive format from the URL path suffix, falling
// back to the response Content-Type.
func DetectFormat(rawURL, contentType string) (Format, error) {
	if u, err := url.Parse(rawURL); err == nil {
		name := strings.ToLower(path.Base(u.Path))
		switch {
		case strings.HasSuffix(name, ".zip"):
			return FormatZip, nil
		case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
			return FormatTarGz, nil
		case strings.HasSuffix(name, ".tar"):
			return FormatTar, nil
		}
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/zip", "application/x-zip-compressed":
		return FormatZip, nil
	case "application/gzip", "application/x-gzip", "application/x-gtar", "application/x-compressed-tar":
		return FormatTarGz, nil
	case "application/x-tar":
		return FormatTar, nil
	}

	return "", fmt.Errorf("%w: %s (content type %q)", ErrUnsupportedFormat, rawURL, contentType)
}
