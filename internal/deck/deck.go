// Package deck loads a presentation from a YAML manifest whose slide bodies
// are written in Markdown.
package deck

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// ErrNoSlides is returned for a manifest without slides.
var ErrNoSlides = errors.New("deck has no slides")

// NoNotes is shown when a slide has no speaker notes.
const NoNotes = "—"

// Figure is a clickable element that opens the media viewer.
type Figure struct {
	Title string `yaml:"title" json:"title"`
	Kind  string `yaml:"kind" json:"kind"`
	Image string `yaml:"image" json:"image,omitempty"`
	Text  string `yaml:"text" json:"text,omitempty"`
}

// Document is an embeddable file such as a PDF.
type Document struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// Slide is immutable after Load.
type Slide struct {
	Index   int      `json:"index"`
	Title   string   `json:"title"`
	Section string   `json:"section,omitempty"`
	Notes   string   `json:"notes,omitempty"`
	HTML    string   `json:"html"`
	Media   []Figure `json:"media,omitempty"`
}

// NotesText is the notes panel content.
func (s Slide) NotesText() string {
	if strings.TrimSpace(s.Notes) == "" {
		return NoNotes
	}
	return s.Notes
}

// Deck is a loaded presentation.
type Deck struct {
	Title     string
	Dir       string
	Slides    []Slide
	Documents []Document
}

type manifest struct {
	Title     string          `yaml:"title"`
	Slides    []slideManifest `yaml:"slides"`
	Documents []Document      `yaml:"documents"`
}

type slideManifest struct {
	Title   string   `yaml:"title"`
	Section string   `yaml:"section"`
	Notes   string   `yaml:"notes"`
	Body    string   `yaml:"body"`
	Media   []Figure `yaml:"media"`
}

// Load reads the manifest at path. Relative media paths stay relative; they
// are served from the manifest's directory.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing deck %s: %w", path, err)
	}
	d.Dir = filepath.Dir(path)
	return d, nil
}

// Parse builds a deck from manifest bytes.
func Parse(data []byte) (*Deck, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if len(m.Slides) == 0 {
		return nil, ErrNoSlides
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	d := &Deck{Title: m.Title, Documents: m.Documents}
	for i, sm := range m.Slides {
		idx := i + 1
		source := []byte(sm.Body)
		doc := md.Parser().Parse(text.NewReader(source))

		var buf bytes.Buffer
		if err := md.Renderer().Render(&buf, source, doc); err != nil {
			return nil, fmt.Errorf("rendering slide %d: %w", idx, err)
		}

		title := collapseSpace(sm.Title)
		if title == "" {
			title = headingTitle(doc, source)
		}
		if title == "" {
			title = "Slide " + strconv.Itoa(idx)
		}

		figs := make([]Figure, len(sm.Media))
		for j, f := range sm.Media {
			if f.Kind == "" {
				f.Kind = "placeholder"
			}
			if f.Title == "" {
				f.Title = "Viewer"
			}
			figs[j] = f
		}

		d.Slides = append(d.Slides, Slide{
			Index:   idx,
			Title:   title,
			Section: strings.TrimSpace(sm.Section),
			Notes:   strings.TrimSpace(sm.Notes),
			HTML:    buf.String(),
			Media:   figs,
		})
	}
	return d, nil
}

// Slide returns the slide at a 1-based index.
func (d *Deck) Slide(i int) (Slide, bool) {
	if i < 1 || i > len(d.Slides) {
		return Slide{}, false
	}
	return d.Slides[i-1], true
}

// Len is the number of slides.
func (d *Deck) Len() int { return len(d.Slides) }

// headingTitle prefers the first level-2 heading, then the first level-1.
func headingTitle(doc ast.Node, source []byte) string {
	var h1, h2 string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		switch {
		case h.Level == 2 && h2 == "":
			h2 = collapseSpace(nodeText(h, source))
		case h.Level == 1 && h1 == "":
			h1 = collapseSpace(nodeText(h, source))
		}
		return ast.WalkSkipChildren, nil
	})
	if h2 != "" {
		return h2
	}
	return h1
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteString(nodeText(c, source))
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JumpLabel is the jump menu entry, e.g. "03 • Results — Accuracy".
func (s Slide) JumpLabel() string {
	label := fmt.Sprintf("%02d • ", s.Index)
	if s.Section != "" {
		label += s.Section + " — "
	}
	return label + s.Title
}

// OverviewCaption is the two-line overview tile: "3. Accuracy" and
// "Results • #3".
func (s Slide) OverviewCaption() (heading, sub string) {
	heading = fmt.Sprintf("%d. %s", s.Index, s.Title)
	sub = "#" + strconv.Itoa(s.Index)
	if s.Section != "" {
		sub = s.Section + " • " + sub
	}
	return heading, sub
}
