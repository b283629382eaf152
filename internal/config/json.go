// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/avelichko/imagegate/models"
)

// StructuredJSONConfig is the wire shape of the configuration file. It
// mirrors [StructuredConfig] with snake_case keys and string durations.
// Unknown keys are rejected during decoding: the file is the authoritative
// source and silent typos in it are startup bugs.
type StructuredJSONConfig struct {
	Build struct {
		IgnoreTypeErrors bool `json:"ignore_type_errors"`
		IgnoreLintErrors bool `json:"ignore_lint_errors"`
	} `json:"build,omitempty"`

	Images struct {
		RemotePatterns  []models.RemotePattern `json:"remote_patterns,omitempty"`
		Domains         []string               `json:"domains,omitempty"`
		MinimumCacheTTL Duration               `json:"minimum_cache_ttl,omitempty"`
	} `json:"images,omitempty"`

	Experimental map[string]json.RawMessage `json:"experimental,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			Path string `json:"cache_index_path"`
		} `json:"db,omitempty"`

		Files struct {
			CacheDir string `json:"cache_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	decoder := json.NewDecoder(jsonFile)
	decoder.DisallowUnknownFields()

	var jsonCfg StructuredJSONConfig
	if err := decoder.Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Build: Build{
			IgnoreTypeErrors: jsonCfg.Build.IgnoreTypeErrors,
			IgnoreLintErrors: jsonCfg.Build.IgnoreLintErrors,
		},
		Images: Images{
			RemotePatterns:  jsonCfg.Images.RemotePatterns,
			Domains:         jsonCfg.Images.Domains,
			MinimumCacheTTL: time.Duration(jsonCfg.Images.MinimumCacheTTL),
		},
		Experimental: jsonCfg.Experimental,
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				Path: jsonCfg.Storage.DB.Path,
			},
			Files: Files{
				CacheDir: jsonCfg.Storage.Files.CacheDir,
			},
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
