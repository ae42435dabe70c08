// Package token defines lexical token kinds and trivia for cstlint.
// Invariants:
//   - A Token is immutable once built; "changing" a token builds a new one.
//   - Token.Text holds exactly the source bytes of the token, trivia excluded.
//   - Leading trivia owns every newline before the token and everything after
//     the last newline; trailing trivia owns same-line whitespace and comments
//     up to, but not including, the next newline.
//   - Leading + Text + Trailing of all tokens, in document order, reproduces
//     the source file byte for byte.
package token
