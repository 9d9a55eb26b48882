package ports

import "context"

// Document is the host editor's view of an open document.
type Document interface {
	// Identity returns the absolute path of the document.
	// ok is false for unsaved or virtual documents.
	Identity() (path string, ok bool)

	// Position returns the current cursor coordinates.
	Position() (x, y int)

	// SetPosition moves the cursor and scrolls it into view.
	SetPosition(x, y int)
}

// DocumentListener receives the host lifecycle events the store cares about.
type DocumentListener interface {
	OnDocumentClosed(ctx context.Context, doc Document)
	OnDocumentOpened(ctx context.Context, doc Document)
}
