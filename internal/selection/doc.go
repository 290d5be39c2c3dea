// Package selection resolves user-supplied track selection tokens against a
// catalog and computes the final set of stream indices to exclude from the
// remuxed output. Tokens are either literal stream indices or scoped
// patterns of the form "a:..." (audio) and "s:..." (subtitle).
package selection
