package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// MarshalGraph encodes a document as indented JSON.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes a JSON document.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// WriteGraph writes a document as indented JSON.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// IsDocumentPath reports whether path names a saved document: a .json or
// .bson file.
func IsDocumentPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".bson":
		return !strings.Contains(path, "://")
	}
	return false
}

func isBSON(path string) bool { return strings.EqualFold(filepath.Ext(path), ".bson") }

// WriteGraphFile writes a document to path, as BSON for a .bson file and
// as JSON otherwise.
func WriteGraphFile(g Graph, path string) error {
	if isBSON(path) {
		data, err := MarshalBSON(g)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON document from r.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// ReadGraphFile reads a document written by [WriteGraphFile].
func ReadGraphFile(path string) (Graph, error) {
	if isBSON(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return Graph{}, fmt.Errorf("open %s: %w", path, err)
		}
		return UnmarshalBSON(data)
	}
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// MarshalBSON encodes a document for storage in MongoDB.
func MarshalBSON(g Graph) ([]byte, error) {
	data, err := bson.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode bson: %w", err)
	}
	return data, nil
}

// UnmarshalBSON decodes a document stored in MongoDB.
func UnmarshalBSON(data []byte) (Graph, error) {
	var g Graph
	if err := bson.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decode bson: %w", err)
	}
	return g, nil
}
