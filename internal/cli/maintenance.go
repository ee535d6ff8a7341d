package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *app) dispatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Run one alert dispatch cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, d *Deps) error {
				report, err := d.Alerts.DispatchDueAlerts(ctx)
				if err != nil {
					return err
				}
				if a.outputJSON {
					return writeJSON(cmd.OutOrStdout(), report)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sent=%d retried=%d failed=%d skipped=%d\n",
					report.Sent, report.Retried, report.Failed, report.Skipped)
				return nil
			})
		},
	}
}

func (a *app) purgeAlertsCmd() *cobra.Command {
	var retention time.Duration

	cmd := &cobra.Command{
		Use:   "purge-alerts",
		Short: "Delete SENT, FAILED and CANCELLED alerts older than the retention",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("retention") && retention <= 0 {
				return fmt.Errorf("--retention must be positive")
			}
			return a.run(cmd, func(ctx context.Context, d *Deps) error {
				keep := d.Retention
				if cmd.Flags().Changed("retention") {
					keep = retention
				}
				purged, err := d.Alerts.PurgeTerminalAlerts(ctx, keep)
				if err != nil {
					return err
				}
				if a.outputJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]int64{"purged": purged})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "purged=%d\n", purged)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&retention, "retention", 0, "Keep alerts touched within this window (defaults to ALERT_RETENTION)")
	return cmd
}

func (a *app) relayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Publish one batch of pending outbox events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, d *Deps) error {
				report, err := d.Relay.RelayOnce(ctx)
				if a.outputJSON {
					if jsonErr := writeJSON(cmd.OutOrStdout(), report); jsonErr != nil {
						return jsonErr
					}
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "published=%d pending=%d\n", report.Published, report.Pending)
				}
				return err
			})
		},
	}
}
