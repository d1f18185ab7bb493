package linker

import (
	"fmt"
	"strings"

	"nest-sdk-gen/internal/model"
)

// ClientPool stores the generated client files of one run for quick lookup
type ClientPool struct {
	// files in insertion (controller) order
	files []*model.ClientFile

	// FileMap: lower-cased output file name -> ClientFile
	FileMap map[string]*model.ClientFile

	// ClassMap: service class name -> ClientFile
	ClassMap map[string]*model.ClientFile
}

// NewClientPool creates a new empty pool
func NewClientPool() *ClientPool {
	return &ClientPool{
		FileMap:  make(map[string]*model.ClientFile),
		ClassMap: make(map[string]*model.ClientFile),
	}
}

// Add registers a generated file. Two controllers generating the same
// output file would overwrite each other, so that is an error. File names
// are compared case-insensitively for case-insensitive file systems.
func (pool *ClientPool) Add(file *model.ClientFile) error {
	key := strings.ToLower(file.FileName)
	if key == BaseClientFile {
		return fmt.Errorf("%s (%s) generates %s, which is reserved for the transport base class",
			file.Controller, file.Source, file.FileName)
	}
	if prev, ok := pool.FileMap[key]; ok {
		return fmt.Errorf("%s (%s) and %s (%s) both generate %s",
			prev.Controller, prev.Source, file.Controller, file.Source, file.FileName)
	}
	if prev, ok := pool.ClassMap[file.ClassName]; ok {
		return fmt.Errorf("%s (%s) and %s (%s) both generate class %s",
			prev.Controller, prev.Source, file.Controller, file.Source, file.ClassName)
	}

	pool.FileMap[key] = file
	pool.ClassMap[file.ClassName] = file
	pool.files = append(pool.files, file)
	return nil
}

// Files returns the files in the order they were added
func (pool *ClientPool) Files() []*model.ClientFile {
	return pool.files
}

// GetClass retrieves a file by its service class name
func (pool *ClientPool) GetClass(className string) *model.ClientFile {
	return pool.ClassMap[className]
}

// Len returns the number of files in the pool
func (pool *ClientPool) Len() int {
	return len(pool.files)
}
