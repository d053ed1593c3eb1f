// Package branding holds product naming shared by page chrome and titles.
package branding

// AppName is the product name shown in page titles and headers.
const AppName = "Titan"

// OrganizationName is the community that operates the roster.
const OrganizationName = "UNKSO"
