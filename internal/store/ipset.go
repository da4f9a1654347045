package store

// IPSet is a fixed set of blacklisted IP literals known at process start.
// Unlike account blacklist entries it is never persisted or mutated at
// runtime.
type IPSet map[string]struct{}

// NewIPSet builds a set from the given IP literals.
func NewIPSet(ips []string) IPSet {
	set := make(IPSet, len(ips))
	for _, ip := range ips {
		set[ip] = struct{}{}
	}
	return set
}

// Contains reports whether the IP is blacklisted.
func (s IPSet) Contains(ip string) bool {
	_, ok := s[ip]
	return ok
}
