package glassblog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// DirSource reads one post per .md file in a directory. Metadata comes from
// YAML or TOML front matter; the file name supplies the slug unless the
// front matter sets one.
//
//	---
//	title: Hello
//	date: "2024-01-15"
//	tags: [go, web]
//	---
//	# Hello
type DirSource struct {
	Dir string
}

type postMatter struct {
	Slug     string   `yaml:"slug" toml:"slug"`
	Title    string   `yaml:"title" toml:"title"`
	Author   string   `yaml:"author" toml:"author"`
	Date     string   `yaml:"date" toml:"date"`
	ReadTime string   `yaml:"readTime" toml:"readTime"`
	Excerpt  string   `yaml:"excerpt" toml:"excerpt"`
	Tags     []string `yaml:"tags" toml:"tags"`
}

// Load parses every .md file in the directory, in file name order.
func (s *DirSource) Load(ctx context.Context) ([]Post, error) {
	files, err := filepath.Glob(filepath.Join(s.Dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	sort.Strings(files)

	posts := make([]Post, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		p, err := readPostFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, path, err)
		}
		posts = append(posts, p)
	}
	if err := checkSlugs(posts); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, s.Dir, err)
	}
	return posts, nil
}

func (s *DirSource) String() string { return s.Dir }

func readPostFile(path string) (Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Post{}, err
	}
	var m postMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &m)
	if err != nil {
		return Post{}, fmt.Errorf("front matter: %w", err)
	}
	if m.Slug == "" {
		m.Slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Post{
		Slug:     m.Slug,
		Title:    m.Title,
		Author:   m.Author,
		Date:     m.Date,
		ReadTime: m.ReadTime,
		Excerpt:  m.Excerpt,
		Content:  strings.TrimLeft(string(body), "\r\n"),
		Tags:     m.Tags,
	}, nil
}
