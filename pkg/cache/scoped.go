package cache

// ScopedKeyer wraps a Keyer with a prefix so that responses from different
// tracker sites (or different accounts on one site) never share entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "https://acme.atlassian.net|alice@acme.io:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SearchKey generates a prefixed key for a search page.
func (k *ScopedKeyer) SearchKey(opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(opts)
}

// FieldsKey generates a prefixed key for the field catalogue.
func (k *ScopedKeyer) FieldsKey() string {
	return k.prefix + k.inner.FieldsKey()
}
