package node

// Codec converts node tree to and from its encoded form
type Codec interface {
	// ContentType returns the MIME type of encoded form
	ContentType() string
	// Marshal encodes node tree
	Marshal(node *Node) ([]byte, error)
	// Unmarshal decodes node tree
	Unmarshal(data []byte) (*Node, error)
}
