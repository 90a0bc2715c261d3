// Package writers renders a successful check summary.
//
// Design:
//   - Writers own all presentation knowledge (text, JSON).
//   - The checker stays domain-only and never imports this package.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
