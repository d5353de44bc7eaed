package simplepresign

// SignURL builds a one-off Signer and signs a single URL. It is the flat
// entry point for callers that mint URLs rarely; anything minting in volume
// should hold a Signer to reuse its derived-key cache.
//
// A request with ValidityMinutes left at zero gets DefaultValidityMinutes.
// Negative values still fail with ErrInvalidValidity.
func SignURL(req SignRequest, creds Credentials, endpointHost string, opts ...Option) (string, error) {
	if req.ValidityMinutes == 0 {
		req.ValidityMinutes = DefaultValidityMinutes
	}
	base := []Option{WithCredentials(creds), WithEndpoint(endpointHost)}
	s, err := New(append(base, opts...)...)
	if err != nil {
		return "", err
	}
	return s.SignURL(req)
}

// SignURLWithHandler behaves like SignURL but never returns an error: on
// failure it invokes onError when non-nil and returns the empty string.
// Callers must treat an empty result as "no URL".
func SignURLWithHandler(req SignRequest, creds Credentials, endpointHost string, onError func(error), opts ...Option) string {
	url, err := SignURL(req, creds, endpointHost, opts...)
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return ""
	}
	return url
}
