// Package shell is the application frame: the route table of every page,
// the handler that gates and renders them inside the render boundary, and
// the error pages.
package shell
