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

func appointmentCommands(app *appInstance) *cobra.Command {
	appointmentCmd := &cobra.Command{
		Use:   "appointments",
		Short: "manage appointments",
	}

	var req request.CreateAppointment
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "schedule a new appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.ValidateCreateAppointment(); err != nil {
				return err
			}
			a, err := app.fd.CreateAppointment(req.PatientID, req.DoctorID,
				req.AppointmentDate, req.AppointmentTime, req.Duration,
				"", req.Location, req.FollowUpDate, req.Reason, req.Notes)
			if err != nil {
				return err
			}
			printJSON(a)
			return nil
		},
	}
	createCmd.Flags().Int64Var(&req.PatientID, "patient", 0, "patient id")
	createCmd.Flags().Int64Var(&req.DoctorID, "doctor", 0, "doctor id")
	createCmd.Flags().StringVar(&req.AppointmentDate, "date", "", "appointment date (dd-MM-yyyy)")
	createCmd.Flags().StringVar(&req.AppointmentTime, "time", "", "appointment time (HH:mm)")
	createCmd.Flags().StringVar(&req.Duration, "duration", "00:30", "duration (HH:mm)")
	createCmd.Flags().StringVar(&req.Location, "location", "", "location")
	createCmd.Flags().StringVar(&req.FollowUpDate, "follow-up", "", "follow-up date (dd-MM-yyyy)")
	createCmd.Flags().StringVar(&req.Reason, "reason", "", "reason for the visit")
	createCmd.Flags().StringVar(&req.Notes, "notes", "", "notes")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "show an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := app.fd.GetAppointment(id)
			if err != nil {
				return err
			}
			printJSON(a)
			return nil
		},
	}

	var sortField string
	var sortDesc bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list all appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := frontdesk.SortAppointments(app.fd.ListAppointments(), frontdesk.AppointmentSortField(sortField), sortDesc)
			printJSON(list)
			return nil
		},
	}
	listCmd.Flags().StringVar(&sortField, "sort", "id", "sort field: id, patient_id, doctor_id, start, duration, status, created_at, updated_at")
	listCmd.Flags().BoolVar(&sortDesc, "desc", false, "sort descending")

	var statusReq request.UpdateAppointmentStatus
	statusCmd := &cobra.Command{
		Use:   "status <id>",
		Short: "set an appointment's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			statusReq.ID = id
			if err := statusReq.ValidateUpdateAppointmentStatus(); err != nil {
				return err
			}
			a, err := app.fd.UpdateAppointmentStatus(id, statusReq.Status)
			if err != nil {
				return err
			}
			printJSON(a)
			return nil
		},
	}
	statusCmd.Flags().StringVar(&statusReq.Status, "status", "", "new status")

	var upd request.UpdateAppointment
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "update appointment fields (blank flags keep current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			upd.ID = id
			if err := upd.ValidateUpdateAppointment(); err != nil {
				return err
			}
			a, err := app.fd.UpdateAppointment(id, upd.AppointmentDate, upd.AppointmentTime,
				upd.Duration, "", upd.Location, upd.FollowUpDate, upd.Reason, upd.Notes)
			if err != nil {
				return err
			}
			printJSON(a)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&upd.AppointmentDate, "date", "", "new date (dd-MM-yyyy)")
	updateCmd.Flags().StringVar(&upd.AppointmentTime, "time", "", "new time (HH:mm)")
	updateCmd.Flags().StringVar(&upd.Duration, "duration", "", "new duration (HH:mm)")
	updateCmd.Flags().StringVar(&upd.Location, "location", "", "new location")
	updateCmd.Flags().StringVar(&upd.FollowUpDate, "follow-up", "", "new follow-up date")
	updateCmd.Flags().StringVar(&upd.Reason, "reason", "", "new reason")
	updateCmd.Flags().StringVar(&upd.Notes, "notes", "", "new notes")

	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := app.fd.CancelAppointment(id)
			if err != nil {
				return err
			}
			printJSON(a)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.fd.DeleteAppointment(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("appointment %d not found", id)
			}
			fmt.Printf("appointment %d deleted\n", id)
			return nil
		},
	}

	var patientID, doctorID int64
	var status, startDate, endDate string
	findCmd := &cobra.Command{
		Use:   "find",
		Short: "find appointments by patient, doctor, status or date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case patientID > 0:
				list, err := app.fd.FindAppointmentsByPatient(patientID)
				if err != nil {
					return err
				}
				printJSON(list)
			case doctorID > 0:
				list, err := app.fd.FindAppointmentsByDoctor(doctorID)
				if err != nil {
					return err
				}
				printJSON(list)
			case status != "":
				list, err := app.fd.FindAppointmentsByStatus(status)
				if err != nil {
					return err
				}
				printJSON(list)
			case startDate != "" && endDate != "":
				list, err := app.fd.FindAppointmentsByDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				printJSON(list)
			default:
				return fmt.Errorf("provide one of --patient, --doctor, --status, --from/--to")
			}
			return nil
		},
	}
	findCmd.Flags().Int64Var(&patientID, "patient", 0, "patient id")
	findCmd.Flags().Int64Var(&doctorID, "doctor", 0, "doctor id")
	findCmd.Flags().StringVar(&status, "status", "", "appointment status")
	findCmd.Flags().StringVar(&startDate, "from", "", "range start date (dd-MM-yyyy)")
	findCmd.Flags().StringVar(&endDate, "to", "", "range end date (dd-MM-yyyy)")

	appointmentCmd.AddCommand(createCmd, getCmd, listCmd, statusCmd, updateCmd, cancelCmd, deleteCmd, findCmd)
	return appointmentCmd
}
