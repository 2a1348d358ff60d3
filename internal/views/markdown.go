package views

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

var (
	// ErrPageNotFound is returned when a markdown page does not exist.
	ErrPageNotFound = errors.New("views: markdown page not found")

	// ErrInvalidFrontmatter is returned for malformed YAML front matter.
	ErrInvalidFrontmatter = errors.New("views: invalid front matter")
)

//go:embed content/*.md
var content embed.FS

// MarkdownPage is a rendered and sanitized markdown document.
type MarkdownPage struct {
	Title       string
	Description string
	HTML        string
}

type frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Pages holds the marketing pages written in markdown. They are rendered
// once at load time.
type Pages struct {
	pages map[string]MarkdownPage
}

// DefaultPages loads the embedded pages.
func DefaultPages() (*Pages, error) {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		return nil, err
	}
	return LoadPages(sub)
}

// LoadPages renders every *.md file at the root of fsys. The page name is
// the file name without extension.
func LoadPages(fsys fs.FS) (*Pages, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	files, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}

	p := &Pages{pages: make(map[string]MarkdownPage, len(files))}
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", name, err)
		}
		page, err := renderMarkdown(md, policy, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		p.pages[strings.TrimSuffix(name, path.Ext(name))] = page
	}
	return p, nil
}

// Get returns the page called name.
func (p *Pages) Get(name string) (MarkdownPage, bool) {
	page, ok := p.pages[name]
	return page, ok
}

// Component renders the page called name inside an article. A missing page
// fails at render time with ErrPageNotFound.
func (p *Pages) Component(name string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		page, ok := p.Get(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPageNotFound, name)
		}
		_, err := io.WriteString(w, `<article class="prose">`+page.HTML+`</article>`)
		return err
	})
}

func renderMarkdown(md goldmark.Markdown, policy *bluemonday.Policy, raw []byte) (MarkdownPage, error) {
	meta, body, err := splitFrontmatter(raw)
	if err != nil {
		return MarkdownPage{}, err
	}
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return MarkdownPage{}, err
	}
	return MarkdownPage{
		Title:       meta.Title,
		Description: meta.Description,
		HTML:        policy.Sanitize(buf.String()),
	}, nil
}

// splitFrontmatter separates an optional "---" delimited YAML header from
// the markdown body.
func splitFrontmatter(raw []byte) (frontmatter, []byte, error) {
	var meta frontmatter
	delim := []byte("---")
	if !bytes.HasPrefix(raw, delim) {
		return meta, raw, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(raw, delim), "\r\n")
	end := bytes.Index(rest, delim)
	if end == -1 {
		return meta, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}
	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return meta, nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	body := bytes.TrimLeft(rest[end+len(delim):], "\r\n")
	return meta, body, nil
}
