package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupConfigDefaults(t *testing.T) {
	cnf := &Configuration{}
	require.NoError(t, cnf.SetupConfig())

	assert.Equal(t, "Frontdesk", cnf.ProjectName)
	assert.Equal(t, "data", cnf.DataDir)
	assert.Equal(t, filepath.Join("data", "patients.txt"), cnf.Files.Patients)
	assert.Equal(t, filepath.Join("data", "doctors.txt"), cnf.Files.Doctors)
	assert.Equal(t, filepath.Join("data", "appointments.txt"), cnf.Files.Appointments)
	assert.Equal(t, filepath.Join("data", "checkins.json"), cnf.Files.CheckIns)
	assert.Equal(t, filepath.Join("data", "checkin_history.txt"), cnf.Files.CheckInHistory)
}

func TestSetupConfigKeepsAbsolutePaths(t *testing.T) {
	cnf := &Configuration{DataDir: "/var/lib/frontdesk"}
	cnf.Files.Patients = "/tmp/patients.txt"
	require.NoError(t, cnf.SetupConfig())

	assert.Equal(t, "/tmp/patients.txt", cnf.Files.Patients)
	assert.Equal(t, filepath.Join("/var/lib/frontdesk", "doctors.txt"), cnf.Files.Doctors)
}

func TestInitConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "frontdesk.json")
	content := `{"project_name": "East Wing", "data_dir": "` + dir + `", "files": {"patients": "people.txt"}}`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	require.NoError(t, InitConfig(configFile))

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, "East Wing", cnf.ProjectName)
	assert.Equal(t, filepath.Join(dir, "people.txt"), cnf.Files.Patients)
	assert.Equal(t, filepath.Join(dir, "doctors.txt"), cnf.Files.Doctors)
}

func TestInitConfigMissingFileUsesDefaults(t *testing.T) {
	require.NoError(t, InitConfig(filepath.Join(t.TempDir(), "absent.json")))

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, "Frontdesk", cnf.ProjectName)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "frontdesk.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"project_name": "From File"}`), 0o644))

	t.Setenv("FRONTDESK_PROJECT_NAME", "From Env")
	t.Setenv("FRONTDESK_DATA_DIR", dir)

	require.NoError(t, InitConfig(configFile))

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, "From Env", cnf.ProjectName)
	assert.Equal(t, dir, cnf.DataDir)
}

func TestMockConfig(t *testing.T) {
	dir := t.TempDir()
	cnf := MockConfig(dir)

	assert.Equal(t, filepath.Join(dir, "patients.txt"), cnf.Files.Patients)

	fetched, err := Fetch()
	require.NoError(t, err)
	assert.Same(t, cnf, fetched)
}

func TestSanitizedName(t *testing.T) {
	cnf := &Configuration{ProjectName: "  East Wing Clinic "}
	assert.Equal(t, "East-Wing-Clinic", cnf.SanitizedName())
}
