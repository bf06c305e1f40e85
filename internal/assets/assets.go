package assets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Asset identifies a stored file. Id is what Delete takes back, Url is
// what clients are handed.
type Asset struct {
	Id  string
	Url string
}

// Store persists uploaded assets. Deletes must succeed for ids that no
// longer exist so compensation can be retried safely.
type Store interface {
	Save(fileName string, reader io.Reader) (*Asset, error)
	Delete(id string) error
	Exists(id string) bool
}

// FileStore keeps assets on the local filesystem under a single directory.
type FileStore struct {
	directory string
	baseUrl   string
}

func NewFileStore(directory string, baseUrl string) (*FileStore, error) {
	if err := os.MkdirAll(directory, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}

	return &FileStore{
		directory: directory,
		baseUrl:   strings.TrimRight(baseUrl, "/"),
	}, nil
}

func (store *FileStore) Save(fileName string, reader io.Reader) (*Asset, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, err
	}

	id := hex.EncodeToString(randomBytes) + filepath.Ext(fileName)

	file, err := os.Create(filepath.Join(store.directory, id))
	if err != nil {
		return nil, fmt.Errorf("failed to create asset file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(file.Name())
		return nil, fmt.Errorf("failed to write asset file: %w", err)
	}

	return &Asset{
		Id:  id,
		Url: store.baseUrl + "/" + id,
	}, nil
}

func (store *FileStore) Delete(id string) error {
	// Refuse path separators, the id is a bare file name.
	if id != filepath.Base(id) {
		return fmt.Errorf("invalid asset id %q", id)
	}

	err := os.Remove(filepath.Join(store.directory, id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (store *FileStore) Exists(id string) bool {
	if id != filepath.Base(id) {
		return false
	}

	_, err := os.Stat(filepath.Join(store.directory, id))
	return err == nil
}
