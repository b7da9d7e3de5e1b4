// Package statustext maps HTTP status codes to the short texts shown to
// users when a background request fails.
package statustext

var texts = map[int]string{
	400: "400 Bad request",
	401: "401 Unauthorized",
	403: "403 Forbidden",
	404: "404 Not found",
	408: "408 Request timeout",
	500: "500 Internal server error",
	503: "503 Service unavailable",
	504: "504 Gateway timeout",
}

// Lookup returns the display text for code and whether the code is known.
func Lookup(code int) (string, bool) {
	t, ok := texts[code]
	return t, ok
}

// Codes returns every status code the table knows about, in no particular order.
func Codes() []int {
	codes := make([]int, 0, len(texts))
	for c := range texts {
		codes = append(codes, c)
	}
	return codes
}
