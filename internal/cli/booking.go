package cli

import (
	"context"
	"fmt"
	"strings"

	"facility-booking/internal/domain/recurrence"
	"facility-booking/internal/handler/dto/request"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type conflictOutput struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	Status        string    `json:"status"`
}

type availabilityOutput struct {
	ResourceID uuid.UUID        `json:"resource_id"`
	Available  bool             `json:"available"`
	Conflicts  []conflictOutput `json:"conflicts"`
}

func (a *app) availabilityCmd() *cobra.Command {
	var resourceID, start, end string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Check whether a resource is free over [start, end)",
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := uuid.Parse(resourceID)
			if err != nil {
				return fmt.Errorf("invalid --resource %q", resourceID)
			}
			from, err := parseInstant("start", start)
			if err != nil {
				return err
			}
			to, err := parseInstant("end", end)
			if err != nil {
				return err
			}

			return a.run(cmd, func(ctx context.Context, d *Deps) error {
				got, err := d.Queries.CheckAvailability(ctx, resource, from, to)
				if err != nil {
					return err
				}
				output := availabilityOutput{ResourceID: resource, Available: got.Available, Conflicts: []conflictOutput{}}
				for _, r := range got.Conflicts {
					output.Conflicts = append(output.Conflicts, conflictOutput{
						ReservationID: r.ID(),
						Start:         formatInstant(r.TimeSlot().Start()),
						End:           formatInstant(r.TimeSlot().End()),
						Status:        r.Status().String(),
					})
				}
				if a.outputJSON {
					return writeJSON(cmd.OutOrStdout(), output)
				}
				if output.Available {
					fmt.Fprintln(cmd.OutOrStdout(), "available")
					return nil
				}
				writer := newTable(cmd.OutOrStdout(), "RESERVATION\tSTART\tEND\tSTATUS")
				for _, c := range output.Conflicts {
					fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", c.ReservationID, c.Start, c.End, c.Status)
				}
				return writer.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource ID")
	cmd.Flags().StringVar(&start, "start", "", "Start instant (RFC3339)")
	cmd.Flags().StringVar(&end, "end", "", "End instant (RFC3339)")
	return cmd
}

type previewOutput struct {
	Date         string `json:"date"`
	Start        string `json:"start"`
	End          string `json:"end"`
	WillConflict bool   `json:"will_conflict"`
}

func (a *app) previewCmd() *cobra.Command {
	var req request.RecurrenceRequest
	var resourceID, weekdays string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "List the dates a recurrence would produce without creating anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := uuid.Parse(resourceID)
			if err != nil {
				return fmt.Errorf("invalid --resource %q", resourceID)
			}
			req.ResourceID = resource
			req.Pattern = strings.ToUpper(req.Pattern)
			if req.Weekdays, err = parseWeekdays(weekdays); err != nil {
				return err
			}
			params, err := req.ToParams(uuid.Nil)
			if err != nil {
				return err
			}

			return a.run(cmd, func(ctx context.Context, d *Deps) error {
				items, err := d.Recurrences.PreviewRecurrence(ctx, params)
				if err != nil {
					return err
				}
				output := make([]previewOutput, 0, len(items))
				for _, it := range items {
					output = append(output, previewOutput{
						Date:         it.Date.String(),
						Start:        formatInstant(it.Start),
						End:          formatInstant(it.End),
						WillConflict: it.WillConflict,
					})
				}
				if a.outputJSON {
					return writeJSON(cmd.OutOrStdout(), output)
				}
				writer := newTable(cmd.OutOrStdout(), "DATE\tSTART\tEND\tCONFLICT")
				for _, o := range output {
					conflict := ""
					if o.WillConflict {
						conflict = "yes"
					}
					fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", o.Date, o.Start, o.End, conflict)
				}
				return writer.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&resourceID, "resource", "", "Resource ID")
	cmd.Flags().StringVar(&req.Pattern, "pattern", "WEEKLY", "WEEKLY or MONTHLY")
	cmd.Flags().StringVar(&req.StartDate, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "until", "", "Last date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.StartTime, "start-time", "", "Start time of day (HH:MM)")
	cmd.Flags().StringVar(&req.EndTime, "end-time", "", "End time of day (HH:MM)")
	cmd.Flags().StringVar(&weekdays, "weekdays", "", "Comma separated weekdays, e.g. mon,wed")
	cmd.Flags().IntVar(&req.DayOfMonth, "day-of-month", 0, "Day of month for MONTHLY")
	cmd.Flags().IntVar(&req.Interval, "interval", 1, "Every N weeks or months")
	cmd.Flags().IntVar(&req.MaxOccurrences, "max", recurrence.MaxOccurrencesCeiling, "Occurrence cap")
	return cmd
}

var weekdayNames = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

func parseWeekdays(input string) ([]int, error) {
	if input == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(input, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if len(name) > 3 {
			name = name[:3]
		}
		d, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		out = append(out, d)
	}
	return out, nil
}

func (a *app) generateCmd() *cobra.Command {
	var configID, until string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate recurrence occurrences (all active configs when --config is omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var limit recurrence.Date
			if until != "" {
				d, err := recurrence.ParseDate(until)
				if err != nil {
					return fmt.Errorf("invalid --until %q (expected YYYY-MM-DD)", until)
				}
				limit = d
			}

			if configID == "" {
				return a.run(cmd, func(ctx context.Context, d *Deps) error {
					summary, err := d.Recurrences.GeneratePendingOccurrences(ctx)
					if err != nil {
						return err
					}
					if a.outputJSON {
						return writeJSON(cmd.OutOrStdout(), summary)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "configs=%d created=%d skipped=%d deactivated=%d failed=%d\n",
						summary.Configs, summary.Created, summary.Skipped, summary.Deactivated, len(summary.Failed))
					return nil
				})
			}

			id, err := uuid.Parse(configID)
			if err != nil {
				return fmt.Errorf("invalid --config %q", configID)
			}
			return a.run(cmd, func(ctx context.Context, d *Deps) error {
				result, err := d.Recurrences.GenerateOccurrences(ctx, id, limit)
				if err != nil {
					return err
				}
				if a.outputJSON {
					return writeJSON(cmd.OutOrStdout(), generationOutput(result))
				}
				writer := newTable(cmd.OutOrStdout(), "DATE\tRESULT")
				for _, r := range result.Created {
					fmt.Fprintf(writer, "%s\t%s\n", formatInstant(r.TimeSlot().Start()), r.ID())
				}
				for _, s := range result.Skipped {
					fmt.Fprintf(writer, "%s\tskipped: %s\n", s.Date, s.Reason)
				}
				return writer.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&configID, "config", "", "Recurrence config ID")
	cmd.Flags().StringVar(&until, "until", "", "Generate up to this date (defaults to the horizon)")
	return cmd
}

type generatedOutput struct {
	ConfigID    uuid.UUID         `json:"config_id"`
	Created     []uuid.UUID       `json:"created"`
	Skipped     map[string]string `json:"skipped"`
	Deactivated bool              `json:"deactivated"`
}

func generationOutput(r *commands.GenerationResult) generatedOutput {
	out := generatedOutput{
		ConfigID:    r.ConfigID,
		Created:     make([]uuid.UUID, 0, len(r.Created)),
		Skipped:     make(map[string]string, len(r.Skipped)),
		Deactivated: r.Deactivated,
	}
	for _, res := range r.Created {
		out.Created = append(out.Created, res.ID())
	}
	for _, s := range r.Skipped {
		out.Skipped[s.Date.String()] = s.Reason
	}
	return out
}
