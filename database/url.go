package database

import "strings"

// ConstructDatabaseURL joins a base connection URL with an optional database
// name and forces sslmode=disable unless the URL already sets one. Keeping
// the name separate lets deployments share one base URL across databases.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	base := strings.TrimRight(baseURL, "/")
	query := ""
	if i := strings.Index(base, "?"); i >= 0 {
		base, query = base[:i], base[i+1:]
	}

	url := base + "/" + databaseName
	if query != "" {
		url += "?" + query
	}

	if !strings.Contains(url, "sslmode=") {
		if strings.Contains(url, "?") {
			url += "&sslmode=disable"
		} else {
			url += "?sslmode=disable"
		}
	}

	return url
}
