// Package enrich produces best-effort recipe drafts from a source web page.
//
// Given a URL it fetches the page (optionally through configured proxy
// templates), asks Gemini to extract structured recipe data when an API key
// is available, and otherwise falls back to standard page metadata
// (Open Graph, Twitter Card, title tag). The result is only ever a draft
// handed to the repository; nothing in this package touches storage, and no
// accuracy contract is implied.
package enrich
