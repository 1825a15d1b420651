/*
Copyright 2025 Clinic Frontdesk Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ConfigStore atomic.Value

// FilesConfig names the flat files everything is persisted to, relative to
// DataDir unless absolute.
type FilesConfig struct {
	Patients       string `json:"patients" envconfig:"FRONTDESK_PATIENTS_FILE"`
	Doctors        string `json:"doctors" envconfig:"FRONTDESK_DOCTORS_FILE"`
	Appointments   string `json:"appointments" envconfig:"FRONTDESK_APPOINTMENTS_FILE"`
	CheckIns       string `json:"check_ins" envconfig:"FRONTDESK_CHECKINS_FILE"`
	CheckInHistory string `json:"check_in_history" envconfig:"FRONTDESK_CHECKIN_HISTORY_FILE"`
}

type Configuration struct {
	ProjectName string      `json:"project_name" envconfig:"FRONTDESK_PROJECT_NAME"`
	DataDir     string      `json:"data_dir" envconfig:"FRONTDESK_DATA_DIR"`
	Files       FilesConfig `json:"files"`
}

// SetupConfig fills defaults for anything the file and environment left
// blank and resolves relative file paths against DataDir.
func (cnf *Configuration) SetupConfig() error {
	if cnf.ProjectName == "" {
		cnf.ProjectName = "Frontdesk"
	}
	if cnf.DataDir == "" {
		cnf.DataDir = "data"
	}
	if cnf.Files.Patients == "" {
		cnf.Files.Patients = "patients.txt"
	}
	if cnf.Files.Doctors == "" {
		cnf.Files.Doctors = "doctors.txt"
	}
	if cnf.Files.Appointments == "" {
		cnf.Files.Appointments = "appointments.txt"
	}
	if cnf.Files.CheckIns == "" {
		cnf.Files.CheckIns = "checkins.json"
	}
	if cnf.Files.CheckInHistory == "" {
		cnf.Files.CheckInHistory = "checkin_history.txt"
	}
	cnf.Files.Patients = cnf.resolve(cnf.Files.Patients)
	cnf.Files.Doctors = cnf.resolve(cnf.Files.Doctors)
	cnf.Files.Appointments = cnf.resolve(cnf.Files.Appointments)
	cnf.Files.CheckIns = cnf.resolve(cnf.Files.CheckIns)
	cnf.Files.CheckInHistory = cnf.resolve(cnf.Files.CheckInHistory)
	return nil
}

func (cnf *Configuration) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cnf.DataDir, path)
}

func loadConfigFromFile(configFile string) error {
	cnf := &Configuration{}

	_, err := os.Stat(configFile)
	if configFile != "" && err == nil {
		f, err := os.Open(configFile)
		if err != nil {
			return errors.Wrap(err, "failed to open config file")
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cnf); err != nil {
			return errors.Wrap(err, "failed to decode config file")
		}
	} else if errors.Is(err, os.ErrNotExist) {
		logrus.Info("config file not found, using environment and defaults")
	}

	// Environment variables override file values.
	if err := envconfig.Process("frontdesk", cnf); err != nil {
		return errors.Wrap(err, "failed to process environment variables")
	}

	if err := cnf.SetupConfig(); err != nil {
		return err
	}

	ConfigStore.Store(cnf)
	return nil
}

// InitConfig loads configuration from the given JSON file and the
// environment and publishes it process-wide.
func InitConfig(configFile string) error {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return loadConfigFromFile(configFile)
}

// Fetch returns the current configuration.
func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create frontdesk.json file")
	}
	return c, nil
}

// MockConfig publishes a configuration for tests, rooting all files in dir.
func MockConfig(dir string) *Configuration {
	cnf := &Configuration{
		ProjectName: "Frontdesk",
		DataDir:     dir,
	}
	_ = cnf.SetupConfig()
	ConfigStore.Store(cnf)
	return cnf
}

// SanitizedName returns the project name stripped of whitespace, for use in
// file names and log fields.
func (cnf *Configuration) SanitizedName() string {
	return strings.ReplaceAll(strings.TrimSpace(cnf.ProjectName), " ", "-")
}
