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

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clinichq/frontdesk"
	"github.com/clinichq/frontdesk/config"
)

// FrontdeskCLI encapsulates the root Cobra command.
type FrontdeskCLI struct {
	cmd *cobra.Command
}

// appInstance holds the FrontDesk instance and its configuration, shared by
// every subcommand through the persistent pre-run hook.
type appInstance struct {
	fd  *frontdesk.FrontDesk
	cnf *config.Configuration
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

func preRun(app *appInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(*configFile); err != nil {
			log.Fatal("error loading config: ", err)
		}
		cnf, err := config.Fetch()
		if err != nil {
			return err
		}
		fd, err := frontdesk.NewFrontDesk()
		if err != nil {
			log.Fatal(err)
		}
		app.fd = fd
		app.cnf = cnf
		return nil
	}
}

// printJSON renders a command result on stdout.
func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

func NewCLI() *FrontdeskCLI {
	var configFile string
	app := &appInstance{}

	var rootCmd = &cobra.Command{
		Use:   "frontdesk",
		Short: "Clinic front-desk manager",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./frontdesk.json", "Configuration file for the front desk")
	rootCmd.PersistentPreRunE = preRun(app, &configFile)

	rootCmd.AddCommand(patientCommands(app))
	rootCmd.AddCommand(doctorCommands(app))
	rootCmd.AddCommand(appointmentCommands(app))
	rootCmd.AddCommand(checkInCommands(app))
	rootCmd.AddCommand(seedCommands(app))

	return &FrontdeskCLI{cmd: rootCmd}
}

func (w FrontdeskCLI) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}

// parseID parses a positive entity id from a CLI argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
