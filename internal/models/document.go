package models

// Collection names
const (
	CollectionUsers       = "users"
	CollectionClients     = "clients"
	CollectionProjects    = "projects"
	CollectionTimeEntries = "timeEntries"
	CollectionInvoices    = "invoices"
	CollectionExpenses    = "expenses"
	CollectionCategories  = "categories"
)

// DefaultCollections lists the collections present in a freshly created document.
var DefaultCollections = []string{
	CollectionUsers,
	CollectionClients,
	CollectionProjects,
	CollectionTimeEntries,
	CollectionInvoices,
	CollectionExpenses,
	CollectionCategories,
}

// Document is the single aggregate holding every collection, keyed by name.
type Document map[string][]Record

// DefaultDocument returns a document with one empty sequence per collection.
func DefaultDocument() Document {
	doc := make(Document, len(DefaultCollections))
	doc.EnsureCollections()
	return doc
}

// EnsureCollections adds an empty sequence for every missing default collection.
func (d Document) EnsureCollections() {
	for _, name := range DefaultCollections {
		if d[name] == nil {
			d[name] = []Record{}
		}
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for name, records := range d {
		copied := make([]Record, len(records))
		for i, rec := range records {
			copied[i] = rec.Clone()
		}
		out[name] = copied
	}
	return out
}

// MaxID returns the largest record id found across all collections.
func (d Document) MaxID() int64 {
	var max int64
	for _, records := range d {
		for _, rec := range records {
			if id, ok := rec.ID(); ok && id > max {
				max = id
			}
		}
	}
	return max
}
