package model

// InternContainer interns an anonymous container type in the Internal
// namespace, keyed by its canonical textual form, so repeated uses of e.g.
// List<GObject.Object> across a library share one TypeID (spec.md §4.1
// "Container instantiation").
func (l *Library) InternContainer(c ContainerType) TypeID {
	internal := l.Internal()
	key := c.CanonicalKey(l.QualifiedName)
	if id, ok := internal.FindByName(key); ok {
		return id
	}
	return internal.Append(Type{
		Kind:      KindContainer,
		Name:      key,
		Container: &c,
	})
}
