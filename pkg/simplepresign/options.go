package simplepresign

import "time"

// Option configures a Signer during construction.
type Option func(*Signer)

// WithCredentials sets the access key pair URLs are signed with.
func WithCredentials(creds Credentials) Option {
	return func(s *Signer) {
		s.creds = creds
	}
}

// WithEndpoint sets the storage endpoint as a bare host or host:port, with
// no scheme and no path. For virtual-hosted-style addressing the bucket is
// prepended to this host.
func WithEndpoint(host string) Option {
	return func(s *Signer) {
		s.endpointHost = host
	}
}

// WithRegion overrides the default us-west-1 signing region.
func WithRegion(region string) Option {
	return func(s *Signer) {
		s.region = region
	}
}

// WithPathStyle selects path-style addressing when true (the default) or
// virtual-hosted-style when false.
func WithPathStyle(usePathStyle bool) Option {
	return func(s *Signer) {
		s.usePathStyle = usePathStyle
	}
}

// WithExtraQueryParam appends a bare marker parameter of the given name to
// every signed URL. A request's ExtraQueryParam takes precedence.
func WithExtraQueryParam(name string) Option {
	return func(s *Signer) {
		s.extraQueryParam = name
	}
}

// WithHooks attaches lifecycle hooks to the signer.
func WithHooks(hooks *Hooks) Option {
	return func(s *Signer) {
		s.hooks = hooks
	}
}

// WithClock replaces the time source used for requests that carry no
// explicit timestamp. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}
