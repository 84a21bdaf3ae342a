// Package listing contains the domain model for publishing product listings
// to external marketplace platforms: platform reference data, per-user
// credentials, content templates, the ProductListing entity and its status
// lifecycle, and the adapter port each marketplace implementation satisfies.
package listing
