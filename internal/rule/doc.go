// Package rule implements the rename rules applied to a single file name.
//
// A rule never touches the filesystem. Given a Mask, a Rule and the current
// file name it computes the next file name. The rules are:
//   - Rename: literal replacement of the masked text
//   - Ordinal: prefix plus a zero-padded counter, forward or reverse
//   - Replace: substring substitution
//   - Insert / InsertLast: insert text at a codepoint offset from head or tail
//   - Delete / DeleteLast: remove a codepoint range from head or tail
//   - ToUnicode / ToLocale: reinterpret bytes between two encodings
//
// Offsets are measured in Unicode codepoints and resolved on the UTF-8 bytes
// with IndexOfUTF8, so multi-byte characters are never split.
package rule
