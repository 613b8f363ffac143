package spreadsheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/billing-dashboard-go/internal/domain/repository"
)

// LocalSource lê arquivos do disco local.
type LocalSource struct{}

// NewLocalSource cria a fonte de arquivos locais.
func NewLocalSource() repository.SourceRepository {
	return &LocalSource{}
}

// Supports aceita qualquer caminho; deve ser a última fonte consultada.
func (s *LocalSource) Supports(location string) bool {
	return location != ""
}

func (s *LocalSource) Fetch(_ context.Context, _ string, location string) (string, []byte, error) {
	info, err := os.Stat(location)
	if err != nil {
		return "", nil, fmt.Errorf("error accessing file: %w", err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%s is a directory, not a file", location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return "", nil, fmt.Errorf("error reading file: %w", err)
	}
	return filepath.Base(location), data, nil
}
