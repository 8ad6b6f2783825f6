package pathstore

// Key layout for published outlines.
const (
	DocumentsPrefix = "outlines/documents"
	hashPrefix      = "outlines/by_hash"
)

func DocumentKey(docID string) string { return DocumentsPrefix + "/" + docID }

func OutlineKey(docID string) string { return DocumentKey(docID) + "/outline" }

func MetaKey(docID string) string { return DocumentKey(docID) + "/meta" }

// HashPrefix is the dedup index directory for one content hash.
func HashPrefix(contentHash string) string { return hashPrefix + "/" + contentHash }

func HashKey(contentHash, docID string) string { return HashPrefix(contentHash) + "/" + docID }
