// Package irfile loads operation-instance construction requests from YAML
// documents. It is a thin consumer of the dialect registry: every
// dialect-qualified type or operation name in a document is resolved
// through descriptor lookup, and type parameter text is handed to the
// owning descriptor's parser. The package knows nothing about any concrete
// dialect.
package irfile
