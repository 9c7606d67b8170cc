package util

import (
	"archive/zip"
	"fmt"
	"log"
	"os"
	"sort"
	"time"
)

type ArchiveEntry struct {
	Name string
	Data []byte
}

// CreateArchive writes entries into a zip file at output, sorted by name.
func CreateArchive(entries []ArchiveEntry, output string) error {
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing output file %s: %v", output, cerr)
		}
	}()

	z := zip.NewWriter(out)

	sorted := make([]ArchiveEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	now := time.Now()
	for _, e := range sorted {
		if err := addEntryToZip(z, e, now); err != nil {
			_ = z.Close()
			return fmt.Errorf("archive %s: %w", e.Name, err)
		}
	}

	return z.Close()
}

func addEntryToZip(z *zip.Writer, e ArchiveEntry, modified time.Time) error {
	w, err := z.CreateHeader(&zip.FileHeader{
		Name:     e.Name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return err
	}

	_, err = w.Write(e.Data)
	return err
}
