// Package views holds the HTML components of the web shell: the document
// frame, the per-group layouts, the page placeholders, the markdown backed
// marketing pages and the error pages.
//
// Components are plain templ.Components so they compose with the render
// boundary and the route table.
package views
