// Package generic implements providers.Fetcher over HTTP and a
// providers.Scraper for legal-code sites laid out as a title index with one
// page per title. Transport and parse failures are logged and degrade to
// empty results.
package generic
