package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig application configuration
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Policy    PolicyConfig    `toml:"policy"`
	Retriever RetrieverConfig `toml:"retriever"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig storage locations
type DataConfig struct {
	DataDir    string `toml:"data_dir"`
	AutoBackup bool   `toml:"auto_backup"`
}

// PolicyConfig year-over-year regulatory parameters of the payment engine.
// These change with ARiMR campaign rules, so they live in config rather than
// in code.
type PolicyConfig struct {
	// Over-declaration tolerance as a share of the reference area.
	AreaTolerance float64 `toml:"area_tolerance"`
	// Differences below this many hectares count as floating-point noise.
	AreaEpsilon float64 `toml:"area_epsilon"`
	// PLN paid per eco-scheme point.
	PointValuePLN float64 `toml:"point_value_pln"`
	// Conversion multiplier for EUR-denominated rates.
	EURToPLN float64 `toml:"eur_to_pln"`
	// Entry condition: required points = totalAreaUR * share * points/ha.
	EntryAreaShare   float64 `toml:"entry_area_share"`
	EntryPointsPerHa float64 `toml:"entry_points_per_ha"`
	// More applied practice codes than this on one crop part draws a warning.
	SchemeDensityLimit int `toml:"scheme_density_limit"`
}

// RetrieverConfig evidence retrieval settings
type RetrieverConfig struct {
	ChunkSize         int `toml:"chunk_size"`
	ChunkOverlap      int `toml:"chunk_overlap"`
	EvidenceTimeoutMs int `toml:"evidence_timeout_ms"`
	MaxConcurrent     int `toml:"max_concurrent"`
}

// LoadConfigInfo load metadata
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the built-in defaults (2025/2026 campaign rules).
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20281,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:    "data",
			AutoBackup: true,
		},
		Policy: PolicyConfig{
			AreaTolerance:      0.03,
			AreaEpsilon:        0.001,
			PointValuePLN:      100.0,
			EURToPLN:           4.3,
			EntryAreaShare:     0.25,
			EntryPointsPerHa:   5.0,
			SchemeDensityLimit: 3,
		},
		Retriever: RetrieverConfig{
			ChunkSize:         1000,
			ChunkOverlap:      200,
			EvidenceTimeoutMs: 2000,
			MaxConcurrent:     4,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml from the executable directory and
// reports load metadata. Missing file means defaults.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// Environment overrides (E2E / local runs)
	if v := os.Getenv("AGROOPTIMA_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("AGROOPTIMA_EUR_TO_PLN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			config.Policy.EURToPLN = f
		}
	}

	return config, info, nil
}

// LoadConfig loads config.toml next to the executable.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory tree next to the executable.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports", "backups"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
