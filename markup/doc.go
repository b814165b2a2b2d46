// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package markup renders user-written text to HTML.

Poll descriptions and timeline comments are Markdown (GitHub flavored, hard
line breaks). Raw HTML in the source is dropped, so output is safe to place
in a template unescaped.

# Batches

	engine := markup.NewEngine()
	engine.AddObject(comment.PHID, comment.Content)
	if err := engine.Process(); err != nil {
		return err
	}
	html, err := engine.Output(comment.PHID)

Identical content queued in one batch is rendered once. Output before
Process returns ErrNotProcessed. RenderOne renders a single string
without a batch.
*/
package markup
