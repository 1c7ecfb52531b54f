package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/saniainf/tablecore"
	"github.com/saniainf/tablecore/model"
)

// historyFile is the on-disk undo stack for a single document file, kept as
// a sidecar alongside it. It mirrors history.Service's stack-with-cursor
// shape, persisted across separate tablectl invocations.
type historyFile struct {
	Snapshots []*model.Document `json:"snapshots"`
	Index     int               `json:"index"`
}

const historyLimit = 50

func historyPath(docPath string) string {
	return docPath + ".history.json"
}

func loadDocument(path string) (*model.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tablectl: reading %s: %w", path, err)
	}
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("tablectl: parsing %s: %w", path, err)
	}
	return &doc, nil
}

func saveDocument(path string, doc *model.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("tablectl: encoding document: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("tablectl: writing %s: %w", path, err)
	}
	return nil
}

func loadHistoryFile(docPath string) (historyFile, error) {
	raw, err := os.ReadFile(historyPath(docPath))
	if os.IsNotExist(err) {
		return historyFile{Index: -1}, nil
	}
	if err != nil {
		return historyFile{}, fmt.Errorf("tablectl: reading history: %w", err)
	}
	var hf historyFile
	if err := json.Unmarshal(raw, &hf); err != nil {
		return historyFile{}, fmt.Errorf("tablectl: parsing history: %w", err)
	}
	return hf, nil
}

func saveHistoryFile(docPath string, hf historyFile) error {
	raw, err := json.MarshalIndent(hf, "", "  ")
	if err != nil {
		return fmt.Errorf("tablectl: encoding history: %w", err)
	}
	if err := os.WriteFile(historyPath(docPath), raw, 0o644); err != nil {
		return fmt.Errorf("tablectl: writing history: %w", err)
	}
	return nil
}

// resetHistory starts a fresh undo stack containing only doc, used by load
// and import.
func resetHistory(docPath string, doc *model.Document) error {
	return saveHistoryFile(docPath, historyFile{Snapshots: []*model.Document{doc}, Index: 0})
}

// appendSnapshot records doc as the new top of the undo stack, truncating
// any redo tail first and dropping the oldest snapshot past historyLimit.
func appendSnapshot(docPath string, doc *model.Document) error {
	hf, err := loadHistoryFile(docPath)
	if err != nil {
		return err
	}
	if hf.Index < len(hf.Snapshots)-1 {
		hf.Snapshots = hf.Snapshots[:hf.Index+1]
	}
	hf.Snapshots = append(hf.Snapshots, doc)
	hf.Index++
	if len(hf.Snapshots) > historyLimit {
		hf.Snapshots = hf.Snapshots[1:]
		hf.Index--
	}
	return saveHistoryFile(docPath, hf)
}

// openTable loads the document at path and builds a Table over it.
func openTable(path string) (*tablecore.Table, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	table, err := tablecore.Open(doc).Build()
	if err != nil {
		return nil, fmt.Errorf("tablectl: %s fails validation: %w", path, err)
	}
	return table, nil
}

// persist writes table's current state back to path and records it to the
// on-disk undo stack.
func persist(path string, table *tablecore.Table) error {
	doc := table.Model().ToJSON()
	if err := saveDocument(path, doc); err != nil {
		return err
	}
	return appendSnapshot(path, doc)
}
