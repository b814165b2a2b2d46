// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package markup

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var ErrNotProcessed = errors.New("markup engine has not processed this object")

// Engine renders user-authored text to HTML. Objects are queued with
// AddObject and rendered together by Process; identical content within one
// batch is rendered once.
type Engine struct {
	md      goldmark.Markdown
	objects map[string]string
	outputs map[string]template.HTML
	renders int
}

func NewEngine() *Engine {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &Engine{
		md:      md,
		objects: make(map[string]string),
		outputs: make(map[string]template.HTML),
	}
}

// RenderOne renders a single piece of content immediately
func RenderOne(content string) (template.HTML, error) {
	return NewEngine().render(content)
}

// AddObject queues content under key for the next Process call
func (e *Engine) AddObject(key, content string) {
	e.objects[key] = content
}

// Process renders every queued object
func (e *Engine) Process() error {
	byDigest := make(map[string]template.HTML, len(e.objects))
	for key, content := range e.objects {
		digest := digestOf(content)
		if out, ok := byDigest[digest]; ok {
			e.outputs[key] = out
			continue
		}

		out, err := e.render(content)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", key, err)
		}
		byDigest[digest] = out
		e.outputs[key] = out
	}

	e.objects = make(map[string]string)
	return nil
}

// Output returns the rendered HTML for key
func (e *Engine) Output(key string) (template.HTML, error) {
	out, ok := e.outputs[key]
	if !ok {
		return "", ErrNotProcessed
	}
	return out, nil
}

// Renders reports how many render passes the engine has performed
func (e *Engine) Renders() int {
	return e.renders
}

func (e *Engine) render(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	e.renders++
	// goldmark escapes text and drops raw HTML unless WithUnsafe is set
	return template.HTML(buf.String()), nil
}

func digestOf(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
