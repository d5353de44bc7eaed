package awssdk

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var (
	amzDatePattern   = regexp.MustCompile(`^\d{8}T\d{6}Z$`)
	signaturePattern = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// StructuralDiff compares a locally signed URL against an SDK-signed URL for
// the same request and returns a line per divergence. Signature and date
// values are checked for shape, not equality: the two engines sign at
// different instants. The SDK's x-id operation parameter is ignored.
//
// An empty result means the URLs agree on everything the service derives
// verification inputs from.
func StructuralDiff(localURL, sdkURL string) ([]string, error) {
	local, err := url.Parse(localURL)
	if err != nil {
		return nil, fmt.Errorf("invalid local URL: %w", err)
	}
	sdk, err := url.Parse(sdkURL)
	if err != nil {
		return nil, fmt.Errorf("invalid sdk URL: %w", err)
	}

	var diffs []string
	add := func(format string, args ...interface{}) {
		diffs = append(diffs, fmt.Sprintf(format, args...))
	}

	if local.Scheme != sdk.Scheme {
		add("scheme: local=%s sdk=%s", local.Scheme, sdk.Scheme)
	}
	if local.Host != sdk.Host {
		add("host: local=%s sdk=%s", local.Host, sdk.Host)
	}
	if local.EscapedPath() != sdk.EscapedPath() {
		add("path: local=%s sdk=%s", local.EscapedPath(), sdk.EscapedPath())
	}

	localQuery := local.Query()
	sdkQuery := sdk.Query()
	sdkQuery.Del("x-id")

	if lk, sk := sortedKeys(localQuery), sortedKeys(sdkQuery); !equalStrings(lk, sk) {
		add("parameters: local=%s sdk=%s", strings.Join(lk, ","), strings.Join(sk, ","))
	}

	for _, key := range []string{"X-Amz-Algorithm", "X-Amz-Expires", "X-Amz-SignedHeaders"} {
		if lv, sv := localQuery.Get(key), sdkQuery.Get(key); lv != sv {
			add("%s: local=%s sdk=%s", key, lv, sv)
		}
	}

	engines := []struct {
		name  string
		query url.Values
	}{
		{"local", localQuery},
		{"sdk", sdkQuery},
	}
	for _, e := range engines {
		if v := e.query.Get("X-Amz-Date"); !amzDatePattern.MatchString(v) {
			add("X-Amz-Date (%s): malformed value %q", e.name, v)
		}
		if v := e.query.Get("X-Amz-Signature"); !signaturePattern.MatchString(v) {
			add("X-Amz-Signature (%s): not 64 lowercase hex characters", e.name)
		}
	}

	diffs = append(diffs, diffCredentialScopes(localQuery, sdkQuery)...)

	return diffs, nil
}

// diffCredentialScopes checks that both X-Amz-Credential values are well
// formed and agree on everything except the scope date.
func diffCredentialScopes(localQuery, sdkQuery url.Values) []string {
	var diffs []string

	localParts := strings.Split(localQuery.Get("X-Amz-Credential"), "/")
	sdkParts := strings.Split(sdkQuery.Get("X-Amz-Credential"), "/")
	if len(localParts) != 5 {
		diffs = append(diffs, fmt.Sprintf("X-Amz-Credential (local): expected 5 components, got %d", len(localParts)))
	}
	if len(sdkParts) != 5 {
		diffs = append(diffs, fmt.Sprintf("X-Amz-Credential (sdk): expected 5 components, got %d", len(sdkParts)))
	}
	if len(localParts) != 5 || len(sdkParts) != 5 {
		return diffs
	}

	if localParts[0] != sdkParts[0] {
		diffs = append(diffs, fmt.Sprintf("access key: local=%s sdk=%s", localParts[0], sdkParts[0]))
	}
	scopeFields := []struct {
		index int
		name  string
	}{
		{2, "region"},
		{3, "service"},
		{4, "terminator"},
	}
	for _, f := range scopeFields {
		if localParts[f.index] != sdkParts[f.index] {
			diffs = append(diffs, fmt.Sprintf("credential %s: local=%s sdk=%s", f.name, localParts[f.index], sdkParts[f.index]))
		}
	}

	if date := localQuery.Get("X-Amz-Date"); !strings.HasPrefix(date, localParts[1]) {
		diffs = append(diffs, fmt.Sprintf("scope date (local): %s does not open X-Amz-Date %s", localParts[1], date))
	}
	if date := sdkQuery.Get("X-Amz-Date"); !strings.HasPrefix(date, sdkParts[1]) {
		diffs = append(diffs, fmt.Sprintf("scope date (sdk): %s does not open X-Amz-Date %s", sdkParts[1], date))
	}

	return diffs
}

func sortedKeys(values url.Values) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
