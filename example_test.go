package cursorkeep_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/cursorkeep"
)

type editorView struct {
	file string
	row  int
	col  int
}

func (v *editorView) Identity() (string, bool) { return v.file, v.file != "" }
func (v *editorView) Position() (int, int)     { return v.row, v.col }
func (v *editorView) SetPosition(row, col int) { v.row, v.col = row, col }

// ExampleOpen shows a host wiring its open/close events to the keeper.
func ExampleOpen() {
	dir, err := os.MkdirTemp("", "cursorkeep-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	keeper, err := cursorkeep.Open(cursorkeep.WithPath(filepath.Join(dir, "session.json")))
	if err != nil {
		log.Fatal(err)
	}
	defer keeper.Close()

	ctx := context.Background()
	listener := keeper.Listener()

	// The user closes main.go with the cursor on row 40, column 12...
	listener.OnDocumentClosed(ctx, &editorView{file: "/project/main.go", row: 40, col: 12})

	// ...and later opens it again.
	reopened := &editorView{file: "/project/main.go"}
	listener.OnDocumentOpened(ctx, reopened)

	fmt.Println(reopened.row, reopened.col)
	// Output: 40 12
}
