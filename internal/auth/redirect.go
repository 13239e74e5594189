package auth

import "strings"

const defaultLandingPath = "/dashboard/my-jobs"

// RedirectTarget decides where to send the browser after OAuth sign-in.
// Relative paths are resolved against baseURL, URLs on baseURL are kept, and
// everything else lands on the job list.
func RedirectTarget(target, baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	switch {
	case strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//"):
		return baseURL + target
	case sameOrigin(target, baseURL):
		return target
	}
	return baseURL + defaultLandingPath
}

// sameOrigin is a prefix match that refuses look-alike hosts such as
// http://localhost:3000.evil.com.
func sameOrigin(target, baseURL string) bool {
	if baseURL == "" || !strings.HasPrefix(target, baseURL) {
		return false
	}
	rest := target[len(baseURL):]
	return rest == "" || strings.ContainsAny(rest[:1], "/?#")
}
