package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// obsmon config.toml key mapping. Keys set explicitly on the command
// line always win over the file.
type fileConfig struct {
	Serial        string `toml:"serial"`
	MQTTURL       string `toml:"mqtt_url"`
	MetricsAddr   string `toml:"metrics_addr"`
	StatsInterval string `toml:"stats_interval"`
	SampleEvery   int    `toml:"sample_every"`
}

func applyConfig(path string) error {
	onCmdline := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { onCmdline[f.Name] = true })

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("serial") && !onCmdline["serial"] {
		serialPath = strings.TrimSpace(raw.Serial)
	}
	if meta.IsDefined("mqtt_url") && !onCmdline["mqtt"] {
		mqttURL = strings.TrimSpace(raw.MQTTURL)
	}
	if meta.IsDefined("metrics_addr") && !onCmdline["metrics"] {
		metricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("stats_interval") && !onCmdline["stats"] {
		d, err := time.ParseDuration(raw.StatsInterval)
		if err != nil {
			return fmt.Errorf("stats_interval: %w", err)
		}
		statsEvery = d
	}
	if meta.IsDefined("sample_every") && !onCmdline["sample"] {
		sampleEvery = raw.SampleEvery
	}
	return nil
}
