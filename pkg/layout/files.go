package layout

import (
	"fmt"
	"io"
	"os"
)

// ReadItemSet reads an ItemSet from r.
func ReadItemSet(r io.Reader) (ItemSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ItemSet{}, fmt.Errorf("read item set: %w", err)
	}
	return UnmarshalItemSet(data)
}

// ReadItemSetFile reads an ItemSet from a JSON file.
func ReadItemSetFile(path string) (ItemSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ItemSet{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalItemSet(data)
}

// WriteItemSetFile writes an ItemSet to a JSON file.
func WriteItemSetFile(s ItemSet, path string) error {
	data, err := MarshalItemSet(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
