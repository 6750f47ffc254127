package mal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/zalando/go-keyring"
)

// Token store kinds accepted by NewStore.
const (
	StoreFile    = "file"
	StoreKeyring = "keyring"
)

// TokenStore persists the OAuth token between runs.
type TokenStore interface {
	Load() (Token, error)
	Save(Token) error
	Delete() error
}

// NewStore returns the store named by kind. path is only used by the file store.
func NewStore(kind, path string) (TokenStore, error) {
	switch kind {
	case "", StoreFile:
		return &FileStore{Path: path}, nil
	case StoreKeyring:
		return &KeyringStore{Service: constant.App, User: "mal-token"}, nil
	default:
		return nil, fmt.Errorf("%w: unknown token store %q", errs.ErrConfig, kind)
	}
}

// FileStore keeps the token as indented JSON in a single file.
type FileStore struct {
	Path string
}

func (s *FileStore) Load() (Token, error) {
	var token Token

	data, err := filesystem.API().ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return token, fmt.Errorf("token file %s: %w", s.Path, errs.ErrNoToken)
		}
		return token, err
	}

	if err := json.Unmarshal(data, &token); err != nil {
		return token, fmt.Errorf("parse token file: %w", err)
	}
	return token, nil
}

func (s *FileStore) Save(token Token) error {
	data, err := json.MarshalIndent(token, "", "    ")
	if err != nil {
		return err
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(s.Path), os.ModePerm); err != nil {
		return err
	}
	return filesystem.WriteAtomic(s.Path, data, 0o600)
}

func (s *FileStore) Delete() error {
	err := filesystem.API().Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// KeyringStore keeps the token in the system keyring.
type KeyringStore struct {
	Service string
	User    string
}

func (s *KeyringStore) Load() (Token, error) {
	var token Token

	str, err := keyring.Get(s.Service, s.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return token, fmt.Errorf("keyring: %w", errs.ErrNoToken)
		}
		return token, err
	}

	if err := json.Unmarshal([]byte(str), &token); err != nil {
		return token, fmt.Errorf("parse keyring token: %w", err)
	}
	return token, nil
}

func (s *KeyringStore) Save(token Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return keyring.Set(s.Service, s.User, string(data))
}

func (s *KeyringStore) Delete() error {
	err := keyring.Delete(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
