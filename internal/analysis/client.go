package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"fitforworks/internal/config"
	"fitforworks/internal/document"
	"fitforworks/internal/logging"
)

// Client submits resumes to the analysis service. Identical in-flight
// requests are collapsed with singleflight, and fresh results are memoized
// by effect key so a restarted flow over the same document and context does
// not pay for a second analysis.
type Client struct {
	analyzeURL string
	matchURL   string
	httpc      *http.Client
	cache      *gocache.Cache
	group      singleflight.Group
}

// NewClient builds a client from cfg.
func NewClient(cfg *config.Config) *Client {
	ttl := cfg.CacheTTL()
	return &Client{
		analyzeURL: cfg.Service.AnalyzeURL,
		matchURL:   cfg.Service.MatchURL,
		httpc:      &http.Client{Timeout: cfg.RequestTimeout()},
		cache:      gocache.New(ttl, 2*ttl),
	}
}

// ReviewParams carries the review wizard selections. Empty fields are
// omitted from the request.
type ReviewParams struct {
	Category string
	Role     string
	Level    string
}

// Analyze submits doc for a standalone review. key identifies the
// (document, context) pair for caching and request collapsing.
func (c *Client) Analyze(ctx context.Context, key string, doc *document.Ref, params ReviewParams) (*RawResult, error) {
	fields := map[string]string{}
	if params.Category != "" {
		fields["job_category"] = params.Category
	}
	if params.Role != "" {
		fields["job_role"] = params.Role
	}
	if params.Level != "" {
		fields["experience_level"] = params.Level
	}
	return c.submit(ctx, key, c.analyzeURL, doc, fields)
}

// Match submits doc together with a job description.
func (c *Client) Match(ctx context.Context, key string, doc *document.Ref, jobDescription string) (*RawResult, error) {
	return c.submit(ctx, key, c.matchURL, doc, map[string]string{"jd": jobDescription})
}

func (c *Client) submit(ctx context.Context, key, url string, doc *document.Ref, fields map[string]string) (*RawResult, error) {
	if cached, ok := c.cache.Get(key); ok {
		logging.API("Cache hit for %s", key)
		return cached.(*RawResult), nil
	}

	result, err, shared := c.group.Do(key, func() (interface{}, error) {
		raw, err := c.post(ctx, url, doc, fields)
		if err != nil {
			return nil, err
		}
		c.cache.SetDefault(key, raw)
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.APIDebug("Request %s shared with concurrent caller", key)
	}
	return result.(*RawResult), nil
}

func (c *Client) post(ctx context.Context, url string, doc *document.Ref, fields map[string]string) (*RawResult, error) {
	requestID := uuid.New().String()
	logging.API("POST %s request_id=%s file=%s size=%d", url, requestID, doc.Name, doc.Size)

	body, contentType, err := buildMultipart(doc, fields)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		logging.APIError("Request %s failed: %v", requestID, err)
		return nil, fmt.Errorf("analysis service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logging.APIError("Request %s got HTTP %d: %s", requestID, resp.StatusCode, snippet)
		return nil, fmt.Errorf("analysis service returned HTTP %d", resp.StatusCode)
	}

	var raw RawResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		logging.APIError("Request %s returned unreadable body: %v", requestID, err)
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}

	logging.API("Request %s completed in %s", requestID, time.Since(start).Round(time.Millisecond))
	return &raw, nil
}

func buildMultipart(doc *document.Ref, fields map[string]string) (io.Reader, string, error) {
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, "", fmt.Errorf("reading resume for upload: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", doc.Name)
	if err != nil {
		return nil, "", fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		return nil, "", fmt.Errorf("writing upload form: %w", err)
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// EffectKey derives the cache and collapse key for a request from the flow
// kind, document digest, and context fingerprint.
func EffectKey(kind Kind, digest string, contextParts ...string) string {
	return kind.String() + ":" + digest + ":" + strings.Join(contextParts, "|")
}
