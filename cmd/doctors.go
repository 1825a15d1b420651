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

func doctorCommands(app *appInstance) *cobra.Command {
	doctorCmd := &cobra.Command{
		Use:   "doctors",
		Short: "manage doctors",
	}

	var req request.CreateDoctor
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "register a new doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.ValidateCreateDoctor(); err != nil {
				return err
			}
			d, err := app.fd.CreateDoctor(req.FirstName, req.LastName, req.Specialty, req.PhoneNumber)
			if err != nil {
				return err
			}
			printJSON(d)
			return nil
		},
	}
	createCmd.Flags().StringVar(&req.FirstName, "first-name", "", "doctor first name")
	createCmd.Flags().StringVar(&req.LastName, "last-name", "", "doctor last name")
	createCmd.Flags().StringVar(&req.Specialty, "specialty", "", "doctor specialty")
	createCmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "doctor phone number")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "show a doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := app.fd.GetDoctor(id)
			if err != nil {
				return err
			}
			printJSON(d)
			return nil
		},
	}

	var sortField string
	var sortDesc bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list all doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := frontdesk.SortDoctors(app.fd.ListDoctors(), frontdesk.DoctorSortField(sortField), sortDesc)
			printJSON(list)
			return nil
		},
	}
	listCmd.Flags().StringVar(&sortField, "sort", "id", "sort field: id, first_name, last_name, specialty, phone, created_at, updated_at")
	listCmd.Flags().BoolVar(&sortDesc, "desc", false, "sort descending")

	var upd request.UpdateDoctor
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "update a doctor's name, specialty or phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			upd.ID = id
			if err := upd.ValidateUpdateDoctor(); err != nil {
				return err
			}
			if upd.FirstName != "" || upd.LastName != "" {
				if _, err := app.fd.UpdateDoctorName(id, upd.FirstName, upd.LastName); err != nil {
					return err
				}
			}
			if upd.Specialty != "" {
				if _, err := app.fd.UpdateDoctorSpecialty(id, upd.Specialty); err != nil {
					return err
				}
			}
			if upd.PhoneNumber != "" {
				if _, err := app.fd.UpdateDoctorPhone(id, upd.PhoneNumber); err != nil {
					return err
				}
			}
			d, err := app.fd.GetDoctor(id)
			if err != nil {
				return err
			}
			printJSON(d)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&upd.FirstName, "first-name", "", "new first name")
	updateCmd.Flags().StringVar(&upd.LastName, "last-name", "", "new last name")
	updateCmd.Flags().StringVar(&upd.Specialty, "specialty", "", "new specialty")
	updateCmd.Flags().StringVar(&upd.PhoneNumber, "phone", "", "new phone number")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete a doctor without appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.fd.DeleteDoctor(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("doctor %d not found", id)
			}
			fmt.Printf("doctor %d deleted\n", id)
			return nil
		},
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule <id>",
		Short: "list a doctor's appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			appts, err := app.fd.FindAppointmentsByDoctor(id)
			if err != nil {
				return err
			}
			printJSON(frontdesk.SortAppointments(appts, frontdesk.AppointmentSortByStart, false))
			return nil
		},
	}

	conflictsCmd := &cobra.Command{
		Use:   "conflicts <id>",
		Short: "list overlapping appointments in a doctor's schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			conflicts, err := app.fd.FindDoctorScheduleConflicts(id)
			if err != nil {
				return err
			}
			printJSON(conflicts)
			return nil
		},
	}

	var specialty string
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "search doctors by specialty fragment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if specialty == "" {
				return fmt.Errorf("provide --specialty")
			}
			printJSON(app.fd.FindDoctorsBySpecialty(specialty))
			return nil
		},
	}
	searchCmd.Flags().StringVar(&specialty, "specialty", "", "specialty fragment")

	doctorCmd.AddCommand(createCmd, getCmd, listCmd, updateCmd, deleteCmd, scheduleCmd, conflictsCmd, searchCmd)
	return doctorCmd
}
