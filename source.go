package glassblog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no post matches the requested slug.
	ErrNotFound = errors.New("post not found")
	// ErrLoadFailed wraps every failure to read or decode the posts data.
	ErrLoadFailed = errors.New("posts could not be loaded")
)

// PostSource reads the full list of posts.
type PostSource interface {
	Load(ctx context.Context) ([]Post, error)
}

// NewSource picks an HTTP source for http(s) locations, a directory source
// for existing directories, and a file source for everything else.
func NewSource(location string) PostSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location}
	}
	if fi, err := os.Stat(location); err == nil && fi.IsDir() {
		return &DirSource{Dir: location}
	}
	return &FileSource{Path: location}
}

// FileSource reads posts from a JSON file on disk.
type FileSource struct {
	Path string
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) ([]Post, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer f.Close()
	posts, err := DecodePosts(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, s.Path, err)
	}
	return posts, nil
}

func (s *FileSource) String() string { return s.Path }

// HTTPSource fetches posts with a single anonymous GET.
type HTTPSource struct {
	URL    string
	Client *http.Client // defaults to a client with a 10s timeout
}

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// Load fetches and decodes the resource. There is no retry.
func (s *HTTPSource) Load(ctx context.Context) ([]Post, error) {
	client := s.Client
	if client == nil {
		client = defaultHTTPClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrLoadFailed, s.URL, resp.StatusCode)
	}
	posts, err := DecodePosts(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, s.URL, err)
	}
	return posts, nil
}

func (s *HTTPSource) String() string { return s.URL }

// DecodePosts decodes a JSON array of posts and checks that every post has
// a unique, non-empty slug.
func DecodePosts(r io.Reader) ([]Post, error) {
	var posts []Post
	if err := json.NewDecoder(r).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	if err := checkSlugs(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func checkSlugs(posts []Post) error {
	seen := make(map[string]struct{}, len(posts))
	for i, p := range posts {
		if p.Slug == "" {
			return fmt.Errorf("post %d has no slug", i)
		}
		if _, dup := seen[p.Slug]; dup {
			return fmt.Errorf("duplicate slug %q", p.Slug)
		}
		seen[p.Slug] = struct{}{}
	}
	return nil
}
