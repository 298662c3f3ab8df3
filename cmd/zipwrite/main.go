// Command zipwrite is a small demo that exercises the zipwriter library
// end-to-end: it walks the given paths and writes every regular file it
// finds into a single streaming ZIP64 archive.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/zipflow/zipflow/zipwriter"
)

var (
	wantOutput = flag.String("o", "out.zip", "Output archive path")
	quiet      = flag.Bool("q", false, "Do not print progress")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("no input paths specified")
	}

	w, err := zipwriter.Create(*wantOutput)
	if err != nil {
		log.Fatal(err)
	}

	for _, root := range flag.Args() {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			return addFile(w, root, path)
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	if err := w.Finish(); err != nil {
		log.Fatal(err)
	}
}

func addFile(w *zipwriter.Writer, root, path string) error {
	name, err := filepath.Rel(filepath.Dir(root), path)
	if err != nil {
		name = path
	}
	if !*quiet {
		log.Printf("adding %s", name)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.BeginFile(filepath.ToSlash(name)); err != nil {
		return err
	}
	_, err = io.Copy(writerOnly{w}, f)
	return err
}

// writerOnly exposes only zipwriter.Writer's Write method to io.Copy.
type writerOnly struct {
	w *zipwriter.Writer
}

func (w writerOnly) Write(p []byte) (int, error) {
	return w.w.Write(p)
}
