// Package domain contains the core entities shared across the harvester:
// email records, fetch results and the closed set of search engines. These
// types are intentionally free of infrastructure concerns so they can be
// shared across packages.
package domain
