package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/log"
	"github.com/malbuddy/malbuddy/util"
	"github.com/spf13/viper"
)

const extension = ".json"

// Path returns the file holding the dataset of title inside folder.
// The folder must already exist.
func (k Kind[T]) Path(folder, title string) (string, error) {
	if err := checkFolder(folder); err != nil {
		return "", err
	}

	name := Normalize(title)
	if name == "" {
		return "", fmt.Errorf("%w: title %q normalizes to an empty key", errs.ErrConfig, title)
	}

	return filepath.Join(folder, name+extension), nil
}

// Exists reports whether a dataset of title is stored in folder.
func (k Kind[T]) Exists(folder, title string) bool {
	path, err := k.Path(folder, title)
	if err != nil {
		return false
	}

	exists, err := filesystem.API().Exists(path)
	return err == nil && exists
}

// Load reads the dataset of title from folder.
func (k Kind[T]) Load(folder, title string) ([]T, error) {
	path, err := k.Path(folder, title)
	if err != nil {
		return nil, err
	}
	return k.LoadFile(path)
}

// LoadFile reads a dataset file in either layout.
func (k Kind[T]) LoadFile(path string) ([]T, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s dataset %s: %w", k.Name, path, errs.ErrNotFound)
		}
		return nil, err
	}

	records, err := decode[T](data)
	if err != nil {
		return nil, fmt.Errorf("%s dataset %s: %w", k.Name, path, err)
	}
	return records, nil
}

// Save writes records to path in the configured layout and returns what was written.
// With appendExisting set and a file already at path, the stored records are merged
// behind the new ones and the whole file is rewritten.
func (k Kind[T]) Save(records []T, path string, appendExisting bool) ([]T, error) {
	if err := checkTarget(path); err != nil {
		return nil, err
	}

	var existing []T
	if appendExisting {
		exists, err := filesystem.API().Exists(path)
		if err != nil {
			return nil, err
		}

		if exists {
			if existing, err = k.LoadFile(path); err != nil {
				return nil, err
			}
		}
	}

	merged := k.Merge(records, existing)

	data, err := encode(merged, viper.GetString(key.DatasetOrient))
	if err != nil {
		return nil, err
	}

	if err := filesystem.WriteAtomic(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s dataset: %w", k.Name, err)
	}

	log.With(log.Fields{
		"kind":     k.Name,
		"path":     path,
		"fresh":    len(records),
		"existing": len(existing),
		"written":  len(merged),
	}).Info("dataset saved")

	return merged, nil
}

// List returns the dataset keys stored in folder, sorted, keeping those that fuzzy-match filter.
func List(folder, filter string) ([]string, error) {
	if err := checkFolder(folder); err != nil {
		return nil, err
	}

	infos, err := filesystem.API().ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() || filepath.Ext(info.Name()) != extension {
			continue
		}

		name := util.FileStem(info.Name())
		if filter == "" || fuzzy.MatchFold(filter, name) {
			names = append(names, name)
		}
	}

	slices.Sort(names)
	return names, nil
}

func checkFolder(folder string) error {
	if folder == "" {
		return fmt.Errorf("%w: empty dataset folder", errs.ErrConfig)
	}

	info, err := filesystem.API().Stat(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("folder %s: %w", folder, errs.ErrNotFound)
		}
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a folder", errs.ErrConfig, folder)
	}
	return nil
}

func checkTarget(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty dataset path", errs.ErrConfig)
	}

	if info, err := filesystem.API().Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a folder", errs.ErrConfig, path)
	}

	if !strings.EqualFold(filepath.Ext(path), extension) {
		return fmt.Errorf("%w: %s is not a %s file", errs.ErrConfig, path, extension)
	}

	return checkFolder(filepath.Dir(path))
}
