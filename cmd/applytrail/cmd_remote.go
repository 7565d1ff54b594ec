package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/applytrail/applytrail/client"
)

func parseIDArg(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, arg)
	}
	return id, nil
}

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage anonymous sessions",
	}

	var name string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Start an anonymous session and print its token",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			session, err := apiClient.Sessions.CreateAnonymous(context.Background(), name)
			if err != nil {
				fatal("create session", err)
			}
			output(session, session.Token)
		},
	}
	newCmd.Flags().StringVar(&name, "name", "", "display name")

	cmd.AddCommand(newCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the user the current token belongs to",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			user, err := apiClient.Sessions.Me(context.Background())
			if err != nil {
				fatal("whoami", err)
			}
			output(user, user.ID)
		},
	})
	return cmd
}

func newAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage your applications",
	}
	cmd.AddCommand(appsListCmd())
	cmd.AddCommand(appsShowCmd())
	cmd.AddCommand(appsAddCmd())
	cmd.AddCommand(appsRemoveCmd())
	return cmd
}

func appsListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications with their latest stage",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			apps, hasMore, err := apiClient.Applications.List(context.Background(), limit, offset)
			if err != nil {
				fatal("list applications", err)
			}
			if flagFmt != "table" {
				output(map[string]any{"applications": apps, "has_more": hasMore}, fmt.Sprint(len(apps)))
				return
			}
			rows := make([][]string, 0, len(apps))
			for _, a := range apps {
				latest := ""
				if a.LatestStage != nil {
					latest = *a.LatestStage
				}
				rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.CompanyName, a.RoleTitle, latest})
			}
			formatTable(os.Stdout, []string{"ID", "COMPANY", "ROLE", "STAGE"}, rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}

func appsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an application with all stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "application id")
			if err != nil {
				return err
			}
			app, err := apiClient.Applications.Get(context.Background(), id)
			if err != nil {
				fatal("get application", err)
			}
			output(app, strconv.FormatInt(app.ID, 10))
			return nil
		},
	}
}

func appsAddCmd() *cobra.Command {
	var appliedAt, remark string
	cmd := &cobra.Command{
		Use:   "add <role-id>",
		Short: "Record an application to a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roleID, err := parseIDArg(args[0], "role id")
			if err != nil {
				return err
			}
			date, err := parseDate(appliedAt)
			if err != nil {
				return err
			}
			req := client.CreateApplicationRequest{RoleID: roleID, AppliedAt: date}
			if remark != "" {
				req.Remark = &remark
			}
			app, err := apiClient.Applications.Create(context.Background(), req)
			if err != nil {
				fatal("create application", err)
			}
			output(app, strconv.FormatInt(app.ID, 10))
			return nil
		},
	}
	cmd.Flags().StringVar(&appliedAt, "applied-at", "", "date of the APPLIED stage")
	cmd.Flags().StringVar(&remark, "remark", "", "note for the APPLIED stage")
	_ = cmd.MarkFlagRequired("applied-at")
	return cmd
}

func appsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an application and its stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "application id")
			if err != nil {
				return err
			}
			if err := apiClient.Applications.Delete(context.Background(), id); err != nil {
				fatal("delete application", err)
			}
			output(map[string]any{"deleted": id}, args[0])
			return nil
		},
	}
}

func newStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Add or remove stages of an application",
	}

	var remark string
	addCmd := &cobra.Command{
		Use:   "add <application-id> <type> <date>",
		Short: "Add a stage; rejected when it breaks the stage order",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseIDArg(args[0], "application id")
			if err != nil {
				return err
			}
			date, err := parseDate(args[2])
			if err != nil {
				return err
			}
			req := client.StageRequest{Type: args[1], Date: date}
			if remark != "" {
				req.Remark = &remark
			}
			stage, err := apiClient.Stages.Add(context.Background(), appID, req)
			if err != nil {
				fatal("add stage", err)
			}
			output(stage, strconv.FormatInt(stage.ID, 10))
			return nil
		},
	}
	addCmd.Flags().StringVar(&remark, "remark", "", "note for the stage")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <application-id> <stage-id>",
		Short: "Delete a stage; rejected when it breaks the stage order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseIDArg(args[0], "application id")
			if err != nil {
				return err
			}
			stageID, err := parseIDArg(args[1], "stage id")
			if err != nil {
				return err
			}
			if err := apiClient.Stages.Delete(context.Background(), appID, stageID); err != nil {
				fatal("delete stage", err)
			}
			output(map[string]any{"deleted": stageID}, args[1])
			return nil
		},
	})
	return cmd
}

func newRoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Inspect roles",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "world <role-id>",
		Short: "Show how applications to a role moved through their stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roleID, err := parseIDArg(args[0], "role id")
			if err != nil {
				return err
			}
			view, err := apiClient.Catalog.World(context.Background(), roleID)
			if err != nil {
				fatal("role world", err)
			}
			if flagFmt != "table" {
				output(view, fmt.Sprint(view.ApplicationCount))
				return nil
			}
			rows := make([][]string, 0, len(view.Graph.Edges))
			for _, e := range view.Graph.Edges {
				rows = append(rows, []string{
					e.Source, e.Dest, strconv.Itoa(e.UserCount), strconv.FormatFloat(e.AvgNumHours, 'f', 1, 64),
				})
			}
			formatTable(os.Stdout, []string{"FROM", "TO", "COUNT", "AVG HOURS"}, rows)
			return nil
		},
	})
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your application funnel",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			stats, err := apiClient.Stats(context.Background())
			if err != nil {
				fatal("stats", err)
			}
			output(stats, fmt.Sprint(stats.Applications))
		},
	}
}
