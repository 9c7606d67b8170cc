// Package shanghaifantasy implements providers.Source for shanghaifantasy.com.
// Listings and chapter lists come from the site's fiction/v1 JSON API;
// novel details and chapter bodies are scraped from the rendered pages.
package shanghaifantasy
