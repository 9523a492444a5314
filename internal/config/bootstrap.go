package config

import (
	"errors"
	"os"
)

var sample = Config{}

func init() {
	sample.Polling.CheckIntervalMinutes = 60
	sample.Telegram.BotToken = "YOUR_BOT_TOKEN_HERE"
	sample.Telegram.ChatID = 0
	sample.Sources = []Source{
		{
			Name:            "Example Company",
			URL:             "https://example.com/careers",
			Keywords:        []string{"engineer", "developer", "go"},
			ExcludeKeywords: []string{"senior", "manager"},
		},
		{
			Name: "Another Company",
			URL:  "https://another.com/jobs",
		},
	}
}

// WriteSample creates a starter config file. Refuses to clobber an existing
// one.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New("config file already exists: " + path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return SaveAtomic(path, sample)
}
