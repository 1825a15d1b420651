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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinichq/frontdesk"
	"github.com/clinichq/frontdesk/request"
)

func patientCommands(app *appInstance) *cobra.Command {
	patientCmd := &cobra.Command{
		Use:   "patients",
		Short: "manage patients",
	}

	var req request.CreatePatient
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "register a new patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.ValidateCreatePatient(); err != nil {
				return err
			}
			p, err := app.fd.CreatePatient(req.FirstName, req.LastName, req.Age, req.PhoneNumber)
			if err != nil {
				return err
			}
			printJSON(p)
			return nil
		},
	}
	createCmd.Flags().StringVar(&req.FirstName, "first-name", "", "patient first name")
	createCmd.Flags().StringVar(&req.LastName, "last-name", "", "patient last name")
	createCmd.Flags().IntVar(&req.Age, "age", 0, "patient age (1-120)")
	createCmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "patient phone number")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "show a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.fd.GetPatient(id)
			if err != nil {
				return err
			}
			printJSON(p)
			return nil
		},
	}

	var sortField string
	var sortDesc bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list all patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := frontdesk.SortPatients(app.fd.ListPatients(), frontdesk.PatientSortField(sortField), sortDesc)
			printJSON(list)
			return nil
		},
	}
	listCmd.Flags().StringVar(&sortField, "sort", "id", "sort field: id, first_name, last_name, full_name, age, phone, created_at, updated_at")
	listCmd.Flags().BoolVar(&sortDesc, "desc", false, "sort descending")

	var upd request.UpdatePatient
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "update a patient's name, age or phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			upd.ID = id
			if err := upd.ValidateUpdatePatient(); err != nil {
				return err
			}
			if upd.FirstName != "" || upd.LastName != "" {
				if _, err := app.fd.UpdatePatientName(id, upd.FirstName, upd.LastName); err != nil {
					return err
				}
			}
			if upd.Age != 0 {
				if _, err := app.fd.UpdatePatientAge(id, upd.Age); err != nil {
					return err
				}
			}
			if upd.PhoneNumber != "" {
				if _, err := app.fd.UpdatePatientPhone(id, upd.PhoneNumber); err != nil {
					return err
				}
			}
			p, err := app.fd.GetPatient(id)
			if err != nil {
				return err
			}
			printJSON(p)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&upd.FirstName, "first-name", "", "new first name")
	updateCmd.Flags().StringVar(&upd.LastName, "last-name", "", "new last name")
	updateCmd.Flags().IntVar(&upd.Age, "age", 0, "new age")
	updateCmd.Flags().StringVar(&upd.PhoneNumber, "phone", "", "new phone number")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete a patient without appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.fd.DeletePatient(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("patient %d not found", id)
			}
			fmt.Printf("patient %d deleted\n", id)
			return nil
		},
	}

	appointmentsCmd := &cobra.Command{
		Use:   "appointments <id>",
		Short: "list a patient's active appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			appts, err := app.fd.ListActivePatientAppointments(id)
			if err != nil {
				return err
			}
			printJSON(appts)
			return nil
		},
	}

	var firstPrefix, lastPrefix, phone string
	var minAge, maxAge int
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "search patients by name prefix, phone or age range",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case firstPrefix != "":
				printJSON(app.fd.FindPatientsByFirstNamePrefix(firstPrefix))
			case lastPrefix != "":
				printJSON(app.fd.FindPatientsByLastNamePrefix(lastPrefix))
			case phone != "":
				printJSON(app.fd.FindPatientsByPhone(phone))
			case maxAge > 0:
				list, err := app.fd.FilterPatientsByAgeRange(minAge, maxAge)
				if err != nil {
					return err
				}
				printJSON(list)
			default:
				return fmt.Errorf("provide one of --first-prefix, --last-prefix, --phone, --min-age/--max-age")
			}
			return nil
		},
	}
	searchCmd.Flags().StringVar(&firstPrefix, "first-prefix", "", "first name prefix")
	searchCmd.Flags().StringVar(&lastPrefix, "last-prefix", "", "last name prefix")
	searchCmd.Flags().StringVar(&phone, "phone", "", "exact phone number")
	searchCmd.Flags().IntVar(&minAge, "min-age", 0, "minimum age")
	searchCmd.Flags().IntVar(&maxAge, "max-age", 0, "maximum age")

	patientCmd.AddCommand(createCmd, getCmd, listCmd, updateCmd, deleteCmd, appointmentsCmd, searchCmd)
	return patientCmd
}
