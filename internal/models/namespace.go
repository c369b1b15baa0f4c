package models

// Namespace логическая группа реплицируемых cores.
type Namespace string

const (
	NamespaceAuth      Namespace = "auth"
	NamespaceConfig    Namespace = "config"
	NamespaceData      Namespace = "data"
	NamespaceBlobIndex Namespace = "blobIndex"
	NamespaceBlob      Namespace = "blob"
)

// Namespaces lists every namespace in wire order.
var Namespaces = []Namespace{
	NamespaceAuth,
	NamespaceConfig,
	NamespaceData,
	NamespaceBlobIndex,
	NamespaceBlob,
}

// Valid reports whether ns is one of the closed set of namespaces.
func (ns Namespace) Valid() bool {
	for _, known := range Namespaces {
		if ns == known {
			return true
		}
	}
	return false
}

// ParseNamespace converts a name into a Namespace.
func ParseNamespace(name string) (Namespace, bool) {
	ns := Namespace(name)
	return ns, ns.Valid()
}
