package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"fleetadmin/internal/filter"
	"fleetadmin/internal/models"
	"fleetadmin/internal/services"
	"fleetadmin/internal/stats"

	"github.com/spf13/cobra"
)

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			status := services.NewAuthService(a.client).Status(time.Now())
			if a.jsonOutput {
				return writeJSON(a.out, status)
			}
			if !status.Authenticated {
				fmt.Fprintln(a.out, "Not logged in")
				return nil
			}
			fmt.Fprintln(a.out, "Logged in")
			if status.Subject != "" {
				fmt.Fprintf(a.out, "  user: %s\n", status.Subject)
			}
			if status.Role != "" {
				fmt.Fprintf(a.out, "  role: %s\n", status.Role)
			}
			if status.ExpiresAt != nil {
				fmt.Fprintf(a.out, "  expires: %s\n", status.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func table(w io.Writer, header string, rows func(tw *tabwriter.Writer)) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	tw.Flush()
}

func bookingTable(w io.Writer, bookings []models.Booking) {
	table(w, "ID\tSTATUS\tPAYMENT\tSTART\tEND\tAMOUNT", func(tw *tabwriter.Writer) {
		for _, b := range bookings {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\n", b.ID, b.Status, b.PaymentStatus,
				b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"), b.TotalAmount)
		}
	})
}

func carTable(w io.Writer, cars []models.Car) {
	table(w, "ID\tNAME\tMAKER\tNUMBER\tSTATE\tPRICE", func(tw *tabwriter.Writer) {
		for _, c := range cars {
			state := "booked"
			switch {
			case c.InMaintenance:
				state = "maintenance"
			case c.IsAvailable:
				state = "available"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\n", c.ID, c.Name, c.Maker, c.CarNumber, state, c.Price)
		}
	})
}

func userTable(w io.Writer, users []models.User) {
	table(w, "ID\tNAME\tEMAIL\tNUMBER\tROLE\tVERIFIED", func(tw *tabwriter.Writer) {
		for _, u := range users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%t\n", u.ID, u.DisplayName(), u.EmailAddress(), u.Number, u.Role, u.IsVerified)
		}
	})
}

func parkingTable(w io.Writer, spots []models.ParkingSpot) {
	table(w, "ID\tNAME\tLOCALITY\tCAPACITY", func(tw *tabwriter.Writer) {
		for _, p := range spots {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ID, p.Name, p.Locality, p.Capacity)
		}
	})
}

func deleted(a *app, o models.Outcome[struct{}]) error {
	if !o.Success {
		return fmt.Errorf("%s", o.Message)
	}
	if a.jsonOutput {
		return writeJSON(a.out, o)
	}
	fmt.Fprintln(a.out, o.Message)
	return nil
}

// idCmd builds a subcommand taking one numeric id argument.
func idCmd(use, short string, run func(cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, id)
		},
	}
}

func bookingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "bookings", Short: "Manage bookings"}

	var period, category, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := services.NewBookingService(a.client).List(cmd.Context())
			if out.Success {
				out.Data = filter.Bookings(out.Data, filter.BookingQuery{
					Period:   filter.Period(period),
					Category: filter.Category(category),
					Search:   search,
					Now:      time.Now(),
				})
			}
			return emit(a, out, bookingTable)
		},
	}
	list.Flags().StringVar(&period, "period", "", "today, week or month")
	list.Flags().StringVar(&category, "category", "", "active, upcoming or past")
	list.Flags().StringVar(&search, "q", "", "Search user, car or booking id")

	setStatus := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Move a booking to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status := models.BookingStatus(strings.ToLower(args[1]))
			out := services.NewBookingService(a.client).UpdateStatus(cmd.Context(), id, status)
			return emit(a, out, func(w io.Writer, b models.Booking) {
				fmt.Fprintf(w, "Booking %d is now %s\n", id, status)
			})
		},
	}

	cmd.AddCommand(
		list,
		idCmd("get", "Show one booking", func(cmd *cobra.Command, id int64) error {
			return emit(a, services.NewBookingService(a.client).Get(cmd.Context(), id), nil)
		}),
		setStatus,
		idCmd("delete", "Delete a booking", func(cmd *cobra.Command, id int64) error {
			return deleted(a, services.NewBookingService(a.client).Delete(cmd.Context(), id))
		}),
	)
	return cmd
}

func carsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "cars", Short: "Manage cars"}

	var availability, search, from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List cars",
		RunE: func(cmd *cobra.Command, args []string) error {
			cars := services.NewCarService(a.client)
			var out models.Outcome[[]models.Car]
			if from != "" || to != "" {
				start, err := filter.ParseDate(from)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				end, err := filter.ParseDate(to)
				if err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				out = cars.ListBookedBetween(cmd.Context(), start, end)
			} else {
				out = cars.List(cmd.Context())
			}
			if out.Success {
				out.Data = filter.Cars(out.Data, filter.Availability(availability), search)
			}
			return emit(a, out, carTable)
		},
	}
	list.Flags().StringVar(&availability, "availability", "", "available, booked or maintenance")
	list.Flags().StringVar(&search, "q", "", "Search name, maker or number")
	list.Flags().StringVar(&from, "from", "", "Only cars booked from this date (YYYY-MM-DD)")
	list.Flags().StringVar(&to, "to", "", "Only cars booked until this date (YYYY-MM-DD)")

	var available, maintenance bool
	setAvailability := idCmd("set-availability", "Set a car's availability flags", func(cmd *cobra.Command, id int64) error {
		out := services.NewCarService(a.client).SetAvailability(cmd.Context(), id, available, maintenance)
		return emit(a, out, func(w io.Writer, c models.Car) {
			fmt.Fprintf(w, "Car %d updated\n", id)
		})
	})
	setAvailability.Flags().BoolVar(&available, "available", false, "Car can be booked")
	setAvailability.Flags().BoolVar(&maintenance, "maintenance", false, "Car is in maintenance")

	cmd.AddCommand(
		list,
		idCmd("get", "Show one car", func(cmd *cobra.Command, id int64) error {
			return emit(a, services.NewCarService(a.client).Get(cmd.Context(), id), nil)
		}),
		setAvailability,
		idCmd("delete", "Delete a car", func(cmd *cobra.Command, id int64) error {
			return deleted(a, services.NewCarService(a.client).Delete(cmd.Context(), id))
		}),
	)
	return cmd
}

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage users"}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := services.NewUserService(a.client).List(cmd.Context())
			if out.Success {
				out.Data = filter.Users(out.Data, search)
			}
			return emit(a, out, userTable)
		},
	}
	list.Flags().StringVar(&search, "q", "", "Search name or email")

	var unverify bool
	verify := idCmd("verify", "Mark a user's documents as verified", func(cmd *cobra.Command, id int64) error {
		out := services.NewUserService(a.client).SetVerified(cmd.Context(), id, !unverify)
		return emit(a, out, func(w io.Writer, u models.User) {
			fmt.Fprintf(w, "User %d verified: %t\n", id, !unverify)
		})
	})
	verify.Flags().BoolVar(&unverify, "undo", false, "Clear the verified flag instead")

	cmd.AddCommand(
		list,
		idCmd("get", "Show one user", func(cmd *cobra.Command, id int64) error {
			return emit(a, services.NewUserService(a.client).Get(cmd.Context(), id), nil)
		}),
		verify,
		idCmd("delete", "Delete a user", func(cmd *cobra.Command, id int64) error {
			return deleted(a, services.NewUserService(a.client).Delete(cmd.Context(), id))
		}),
	)
	return cmd
}

func vendorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "vendors", Short: "Manage vendors"}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List vendors",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := services.NewVendorService(a.client).List(cmd.Context())
			if out.Success {
				out.Data = filter.Users(out.Data, search)
			}
			return emit(a, out, userTable)
		},
	}
	list.Flags().StringVar(&search, "q", "", "Search name or email")

	cmd.AddCommand(
		list,
		idCmd("get", "Show one vendor", func(cmd *cobra.Command, id int64) error {
			return emit(a, services.NewVendorService(a.client).Get(cmd.Context(), id), nil)
		}),
		idCmd("delete", "Delete a vendor", func(cmd *cobra.Command, id int64) error {
			return deleted(a, services.NewVendorService(a.client).Delete(cmd.Context(), id))
		}),
	)
	return cmd
}

func parkingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "parking", Short: "Manage parking spots"}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List parking spots",
			RunE: func(cmd *cobra.Command, args []string) error {
				return emit(a, services.NewParkingService(a.client).List(cmd.Context()), parkingTable)
			},
		},
		idCmd("get", "Show one parking spot", func(cmd *cobra.Command, id int64) error {
			return emit(a, services.NewParkingService(a.client).Get(cmd.Context(), id), nil)
		}),
		idCmd("delete", "Delete a parking spot", func(cmd *cobra.Command, id int64) error {
			return deleted(a, services.NewParkingService(a.client).Delete(cmd.Context(), id))
		}),
	)
	return cmd
}

func managersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "managers", Short: "Manage parking managers"}

	search := &cobra.Command{
		Use:   "search <number>",
		Short: "Find a parking manager by phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := services.NewParkingManagerService(a.client).SearchByPhone(cmd.Context(), args[0])
			return emit(a, out, func(w io.Writer, u models.User) { userTable(w, []models.User{u}) })
		},
	}

	assign := &cobra.Command{
		Use:   "assign <parking-id> <manager-id>",
		Short: "Bind a parking manager to a parking spot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parkingID, err := parseID(args[0])
			if err != nil {
				return err
			}
			managerID, err := parseID(args[1])
			if err != nil {
				return err
			}
			out := services.NewParkingManagerService(a.client).Assign(cmd.Context(), parkingID, managerID)
			return emit(a, out, func(w io.Writer, u models.User) {
				fmt.Fprintf(w, "Manager %d assigned to parking %d\n", managerID, parkingID)
			})
		},
	}

	cmd.AddCommand(
		search,
		assign,
		idCmd("list", "List managers of a parking spot", func(cmd *cobra.Command, parkingID int64) error {
			return emit(a, services.NewParkingManagerService(a.client).ListByParking(cmd.Context(), parkingID), userTable)
		}),
		idCmd("get", "Show one parking manager", func(cmd *cobra.Command, id int64) error {
			return emit(a, services.NewParkingManagerService(a.client).Get(cmd.Context(), id), nil)
		}),
		idCmd("detach", "Unbind a manager from their parking spot", func(cmd *cobra.Command, id int64) error {
			out := services.NewParkingManagerService(a.client).Detach(cmd.Context(), id)
			return emit(a, out, func(w io.Writer, u models.User) {
				fmt.Fprintf(w, "Manager %d detached\n", id)
			})
		}),
	)
	return cmd
}

func uploadCmd(a *app) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload images to the asset host",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]services.ImageFile, 0, len(args))
			for _, path := range args {
				f, err := services.OpenImage(path)
				if err != nil {
					for _, opened := range files {
						opened.Close()
					}
					return err
				}
				files = append(files, f)
			}
			defer func() {
				for _, f := range files {
					f.Close()
				}
			}()

			results := a.uploads.UploadMultiple(cmd.Context(), files, folder)
			if a.jsonOutput {
				return writeJSON(a.out, results)
			}

			failed := 0
			for i, r := range results {
				if r.Success {
					fmt.Fprintf(a.out, "%s\t%s\n", args[i], r.Data.SecureURL)
					continue
				}
				failed++
				fmt.Fprintf(a.out, "%s\tFAILED: %s\n", args[i], r.Error)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", services.DefaultUploadFolder, "Asset host folder")
	return cmd
}

func dashboardCmd(a *app) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize revenue, bookings, fleet and parking usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := services.NewDashboardService(a.client).Overview(cmd.Context(), filter.Period(period), time.Now())
			return emit(a, out, overviewTable)
		},
	}
	cmd.Flags().StringVar(&period, "period", string(filter.PeriodMonth), "today, week or month")
	return cmd
}

func overviewTable(w io.Writer, o stats.Overview) {
	fmt.Fprintf(w, "Revenue:          %.2f (%d bookings)\n", o.TotalRevenue, o.PeriodBookings)
	fmt.Fprintf(w, "Active bookings:  %d\n", o.ActiveBookings)
	fmt.Fprintf(w, "Users:            %d\n", o.TotalUsers)
	fmt.Fprintf(w, "Cars:             %d total, %d available, %d booked, %d maintenance (%.1f%% available)\n",
		o.Cars.Total, o.Cars.Available, o.Cars.Booked, o.Cars.Maintenance, o.Cars.AvailabilityRate)

	if len(o.Parking) > 0 {
		fmt.Fprintln(w)
		table(w, "PARKING\tCARS\tCAPACITY\tUSED", func(tw *tabwriter.Writer) {
			for _, p := range o.Parking {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", p.Name, p.Cars, p.Capacity, p.Utilization)
			}
		})
	}
	if len(o.RevenueByType) > 0 {
		fmt.Fprintln(w)
		table(w, "CAR TYPE\tBOOKINGS\tREVENUE", func(tw *tabwriter.Writer) {
			for _, t := range o.RevenueByType {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\n", t.Type, t.Bookings, t.Revenue)
			}
		})
	}
}
