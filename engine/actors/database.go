package actors

import (
	"os"
	"path/filepath"

	"nostrprofiles/engine/library"
)

// Open returns the flat file for the given mind and db, false if there is none yet or
// no config has been set.
func Open(mind, db string) (*os.File, bool) {
	dir, ok := directory(mind)
	if !ok {
		return nil, false
	}
	file, err := os.Open(filepath.Join(dir, db+".dat"))
	if err != nil {
		if !os.IsNotExist(err) {
			library.LogCLI(err.Error(), 1)
		}
		return nil, false
	}
	return file, true
}

// Write replaces the flat file for the given mind and db. The new contents are written
// next to the old file and renamed over it.
func Write(mind, db string, b []byte) error {
	dir, ok := directory(mind)
	if !ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, db+".dat.tmp")
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, db+".dat"))
}

func directory(mind string) (string, bool) {
	c := MakeOrGetConfig()
	if c == nil {
		return "", false
	}
	return filepath.Join(c.GetString("rootDir"), c.GetString("flatFileDir"), mind), true
}
