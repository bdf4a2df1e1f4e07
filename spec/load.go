package spec

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Build-fatal error classes. Callers match them with errors.Is.
var (
	// ErrSchemaUnavailable covers network and I/O failures fetching the
	// document, including timeouts and non-2xx responses.
	ErrSchemaUnavailable = errors.New("schema unavailable")

	// ErrSchemaMalformed covers documents that were fetched but are not
	// valid OpenAPI content.
	ErrSchemaMalformed = errors.New("schema malformed")
)

// DefaultLoadTimeout bounds a schema fetch when the caller's context carries
// no deadline of its own.
const DefaultLoadTimeout = 10 * time.Second

// Document pairs a parsed spec with the bytes it was parsed from. The raw
// bytes feed the manifest fingerprint.
type Document struct {
	Spec        *Spec
	Raw         []byte
	Source      string
	Fingerprint string
}

// Loader fetches and parses OpenAPI documents. The zero value is usable.
type Loader struct {
	// Client is used for http(s) sources. Defaults to http.DefaultClient.
	Client *http.Client

	// Timeout bounds a single load. Defaults to DefaultLoadTimeout.
	Timeout time.Duration
}

// Load fetches the document at source, which is either an http(s) URL or a
// filesystem path, and parses it. There are no retries at this layer.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	timeout := l.Timeout
	if timeout == 0 {
		timeout = DefaultLoadTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := l.fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	return Parse(raw, source)
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaUnavailable, source, err)
		}
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaUnavailable, source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %s: unexpected status %d", ErrSchemaUnavailable, source, resp.StatusCode)
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaUnavailable, source, err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaUnavailable, source, err)
	}
	return raw, nil
}

// Parse validates raw document bytes and decodes them into the typed tree.
func Parse(raw []byte, source string) (*Document, error) {
	if err := Validate(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var s Spec
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", source, ErrSchemaMalformed, err)
	}

	return &Document{
		Spec:        &s,
		Raw:         raw,
		Source:      source,
		Fingerprint: Fingerprint(raw),
	}, nil
}

// Fingerprint returns the SHA-256 hex digest of the raw document bytes.
// Identical input bytes always yield the identical fingerprint.
func Fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
