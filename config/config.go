package config

import (
	"encoding/json"
	"os"
)

// Defaults cover a schedule page saved from the student center with its
// original filename, on the home campus.
const (
	DefaultTimezone     = "America/Toronto"
	DefaultCalendarName = "My Class Schedule"
	DefaultInputFile    = "SA_LEARNER_SERVICES.html"
)

type Config struct {
	Timezone     string `json:"timezone"`
	CalendarName string `json:"calendar_name"`
	InputFile    string `json:"input_file"`
}

// LoadConfig reads the settings file. A missing file is not an error; every
// setting has a default, and keys absent from the file keep theirs.
func LoadConfig(filename string) (*Config, error) {
	cfg := &Config{
		Timezone:     DefaultTimezone,
		CalendarName: DefaultCalendarName,
		InputFile:    DefaultInputFile,
	}

	file, err := os.Open(filename)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
