package history

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// FilePort persists the slot as a single JSON document on disk.
type FilePort struct {
	path string
}

// NewFilePort creates a file-backed persistence port. The slot lives at
// dir/<SlotKey>.json.
func NewFilePort(dir string) *FilePort {
	return &FilePort{path: filepath.Join(dir, SlotKey+".json")}
}

func (p *FilePort) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "history: read %s", p.path)
	}
	return data, nil
}

func (p *FilePort) Save(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return eris.Wrapf(err, "history: mkdir %s", filepath.Dir(p.path))
	}
	// Write-then-rename so a crash never leaves a half-written slot.
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "history: write %s", tmp)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return eris.Wrapf(err, "history: rename %s", tmp)
	}
	return nil
}
