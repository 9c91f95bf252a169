// Package approval runs the human side of the review queue: it walks a
// year's pending deletion proposals, asks the operator about each one, and
// applies the answer. It is the only code path that deletes photos.
package approval
