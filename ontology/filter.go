package ontology

// Classifier maps a GO term to its namespace.
type Classifier interface {
	Namespace(term string) (Namespace, bool)
}

// Filter keeps the GO terms that belong to one namespace.
type Filter struct {
	ns  Namespace
	cls Classifier
}

// NewFilter returns a Filter for ns. A nil classifier keeps every term,
// which is right for inputs already split per ontology.
func NewFilter(ns Namespace, cls Classifier) Filter {
	return Filter{ns: ns, cls: cls}
}

// Namespace returns the namespace the filter selects.
func (f Filter) Namespace() Namespace {
	return f.ns
}

// obsoleter is implemented by classifiers that track retired terms, such
// as *OBO.
type obsoleter interface {
	Obsolete(term string) bool
}

// Keep reports whether term belongs to the filter's namespace.
// Terms the classifier does not know are dropped, as are terms it marks
// obsolete.
func (f Filter) Keep(term string) bool {
	if f.cls == nil {
		return true
	}
	ns, ok := f.cls.Namespace(term)
	if !ok || ns != f.ns {
		return false
	}
	if o, ok := f.cls.(obsoleter); ok && o.Obsolete(term) {
		return false
	}
	return true
}
