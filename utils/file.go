package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GetUniqSubDir creates a uuid-named subdirectory under parentPath.
func GetUniqSubDir(parentPath string) (path string, err error) {
	path = filepath.Join(parentPath, uuid.NewString())
	err = os.Mkdir(path, os.ModePerm)
	return
}

func GetFilenameWithoutExt(path string) (name string) {
	name = filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(path))
	return
}

// MoveFile renames src to dst, falling back to copy+remove across volumes.
func MoveFile(src, dst string) (err error) {
	if err = os.Rename(src, dst); err == nil {
		return
	}
	in, err := os.Open(src)
	if err != nil {
		return
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return
	}
	if err = out.Close(); err != nil {
		return
	}
	return os.Remove(src)
}
