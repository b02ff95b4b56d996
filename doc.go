// Package tplocate locates template files for a template engine.
// A Locator searches an ordered list of root directories; the first root that has a
// template wins. It returns template source with its modification time, lists every
// template under all roots, and verifies that previously seen modification times still
// match disk so a compiled-template cache knows when to recompile.
//
// Template names are "/"-separated paths relative to a root. The default extension
// ("tpl" unless changed with WithExtension) is appended to names that lack it.
package tplocate
