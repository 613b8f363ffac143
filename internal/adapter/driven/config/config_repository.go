package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/domain/repository"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return &config, nil
}

// validate reporta todos os problemas de uma vez.
func validate(c *types.Config) error {
	var errs []error

	switch entity.TrendBasis(strings.ToLower(c.TrendBasis)) {
	case "", entity.TrendFiscal, entity.TrendCalendar:
	default:
		errs = append(errs, fmt.Errorf("trend_basis must be fiscal or calendar, got %q", c.TrendBasis))
	}

	switch c.Filters.EmptyMode {
	case "", entity.EmptySelectsAll, entity.EmptySelectsNone:
	default:
		errs = append(errs, fmt.Errorf("filters.empty_mode must be all or none, got %q", c.Filters.EmptyMode))
	}

	for _, format := range c.ReportType {
		if !types.IsReportFormat(format) {
			errs = append(errs, fmt.Errorf("unknown report_type %q", format))
		}
	}

	for _, kind := range c.Exports {
		if !entity.ExportKind(strings.ToLower(kind)).Valid() {
			errs = append(errs, fmt.Errorf("unknown export %q", kind))
		}
	}

	for field := range c.Mapping {
		f, ok := entity.ParseField(field)
		if !ok || f.IsPeriod() {
			errs = append(errs, fmt.Errorf("mapping: unknown canonical field %q", field))
		}
	}

	return errors.Join(errs...)
}
