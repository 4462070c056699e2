// Package attribute provides the low-level tooling for a single vCard content
// line: the Attribute and Param types, the readers that turn a (possibly
// folded) line of text into an Attribute, the escaping rules used inside
// values, and the folding used when writing lines back out.
//
// The readers are deliberately forgiving. A malformed line is reported to the
// logger and skipped; it never stops the caller from reading the lines that
// follow. This is what makes it possible to read the output of producers that
// do not quite follow RFC 2426, such as older address book applications.
package attribute
