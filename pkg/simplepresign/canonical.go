package simplepresign

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// credentialScope returns the date/region/service/terminator tuple that binds
// a signature to one signing context.
func credentialScope(t signingTime, region string) string {
	return strings.Join([]string{t.shortDate, region, ServiceName, RequestSuffix}, "/")
}

// buildQueryString assembles the authentication parameters in the exact order
// the service reconstructs them during verification. The returned string is
// embedded verbatim in the canonical request and reused in the final URL, so
// the two can never drift apart.
func buildQueryString(accessKeyID, scope string, t signingTime, expiresSeconds int64, extraParam string) string {
	var b strings.Builder
	b.WriteString(AmzAlgorithmKey)
	b.WriteByte('=')
	b.WriteString(SigningAlgorithm)
	b.WriteByte('&')
	b.WriteString(AmzCredentialKey)
	b.WriteByte('=')
	b.WriteString(encodeQueryComponent(accessKeyID + "/" + scope))
	b.WriteByte('&')
	b.WriteString(AmzDateKey)
	b.WriteByte('=')
	b.WriteString(t.amzDate)
	b.WriteByte('&')
	b.WriteString(AmzExpiresKey)
	b.WriteByte('=')
	b.WriteString(strconv.FormatInt(expiresSeconds, 10))
	b.WriteByte('&')
	b.WriteString(AmzSignedHeadersKey)
	b.WriteString("=host")
	if extraParam != "" {
		b.WriteByte('&')
		b.WriteString(encodeQueryComponent(extraParam))
		b.WriteByte('=')
	}
	return b.String()
}

// buildCanonicalRequest reassembles the GET request the way the service will
// when it verifies the signature: method, path, query, the lone host header,
// the signed-header list, and the unsigned-payload marker.
func buildCanonicalRequest(path, query, host string) string {
	var b strings.Builder
	b.WriteString("GET\n")
	b.WriteString(path)
	b.WriteByte('\n')
	b.WriteString(query)
	b.WriteByte('\n')
	b.WriteString("host:")
	b.WriteString(host)
	b.WriteString("\n\nhost\n")
	b.WriteString(UnsignedPayload)
	return b.String()
}

// buildStringToSign binds the canonical request hash to the algorithm,
// timestamp, and credential scope.
func buildStringToSign(t signingTime, scope, canonicalRequest string) string {
	return strings.Join([]string{
		SigningAlgorithm,
		t.amzDate,
		scope,
		hex.EncodeToString(hashSHA256([]byte(canonicalRequest))),
	}, "\n")
}
