// Package domain contains the core business entities of the brand kit service:
// the user-supplied BrandInputs and the generated brand kit artifacts
// (previews and full kits). It is independent of any specific infrastructure,
// LLM vendor, or delivery mechanism.
package domain
