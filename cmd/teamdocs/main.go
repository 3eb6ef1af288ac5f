package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/client"
	"github.com/burakd/teamdocs/internal/ghsync"
)

var (
	apiURL   string
	cacheDir string
)

func main() {
	root := &cobra.Command{
		Use:           "teamdocs",
		Short:         "Command line client for the documentation tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultCacheDir := ".teamdocs"
	if home, err := os.UserHomeDir(); err == nil {
		defaultCacheDir = filepath.Join(home, ".teamdocs")
	}

	root.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:3001", "API base URL")
	root.PersistentFlags().StringVar(&cacheDir, "cache-dir", defaultCacheDir, "offline cache directory")

	root.AddCommand(assignmentsCommand())
	root.AddCommand(membersCommand())
	root.AddCommand(overviewCommand())
	root.AddCommand(syncCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newStore() *client.Store {
	cache, err := client.NewCache(cacheDir)
	if err != nil {
		// A missing cache only disables the offline fallback
		cache = nil
	}
	return client.NewStore(client.New(apiURL), cache)
}

func assignmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "Work with documentation assignments",
	}

	var status, category, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, source := newStore().Assignments(cmd.Context())
			if source != client.SourceRemote {
				fmt.Fprintf(os.Stderr, "warning: showing %s data, API unreachable\n", source)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TOPIC\tASSIGNEE\tCATEGORY\tSTATUS\tDUE\tPROGRESS")
			for _, a := range assignments {
				if status != "" && a.Status != status {
					continue
				}
				if category != "" && a.Category != category {
					continue
				}
				if search != "" && !strings.Contains(strings.ToLower(a.Topic), strings.ToLower(search)) {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d%%\n",
					a.Topic, a.Assignee, a.Category, a.Status, a.DueDate.Format("2006-01-02"), a.Progress)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().StringVar(&category, "category", "", "filter by category")
	list.Flags().StringVar(&search, "search", "", "filter by topic substring")

	var req dto.CreateAssignmentRequest
	var due string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := time.Parse("2006-01-02", due)
			if err != nil {
				return fmt.Errorf("invalid --due, expected YYYY-MM-DD: %w", err)
			}
			req.DueDate = dueDate

			assignment, err := client.New(apiURL).CreateAssignment(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s) assigned to %s\n", assignment.Topic, assignment.ID.Hex(), assignment.Assignee)
			return nil
		},
	}
	create.Flags().StringVar(&req.Topic, "topic", "", "topic title")
	create.Flags().StringVar(&req.Category, "category", "", "category (core-java, backend, frontend)")
	create.Flags().StringVar(&req.AssigneeID, "assignee", "", "assignee member ID")
	create.Flags().StringVar(&req.Priority, "priority", "", "priority (low, medium, high)")
	create.Flags().StringVar(&req.Description, "description", "", "description")
	create.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	_ = create.MarkFlagRequired("topic")
	_ = create.MarkFlagRequired("category")
	_ = create.MarkFlagRequired("assignee")
	_ = create.MarkFlagRequired("due")

	var progress int
	setStatus := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change an assignment's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.UpdateStatusRequest{Status: args[1]}
			if cmd.Flags().Changed("progress") {
				req.Progress = &progress
			}

			assignment, err := client.New(apiURL).UpdateAssignmentStatus(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s (%d%%)\n", assignment.Topic, assignment.Status, assignment.Progress)
			return nil
		},
	}
	setStatus.Flags().IntVar(&progress, "progress", 0, "progress percentage")

	cmd.AddCommand(list, create, setStatus)
	return cmd
}

func membersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Work with team members",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, source := newStore().Members(cmd.Context())
			if source != client.SourceRemote {
				fmt.Fprintf(os.Stderr, "warning: showing %s data, API unreachable\n", source)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMAIL\tROLE\tASSIGNED\tCOMPLETED\tACTIVE")
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%t\n",
					m.Name, m.Email, m.Role, m.AssignedTopics, m.CompletedTopics, m.IsActive)
			}
			return w.Flush()
		},
	}

	var req dto.CreateTeamMemberRequest
	var skills string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a team member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if skills != "" {
				req.Skills = strings.Split(skills, ",")
			}

			member, err := client.New(apiURL).CreateMember(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s) as %s\n", member.Name, member.ID.Hex(), member.Role)
			return nil
		},
	}
	add.Flags().StringVar(&req.Name, "name", "", "member name")
	add.Flags().StringVar(&req.Email, "email", "", "member email")
	add.Flags().StringVar(&req.Role, "role", "", "role (developer, trainee, lead)")
	add.Flags().StringVar(&skills, "skills", "", "comma-separated skills")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")

	cmd.AddCommand(list, add)
	return cmd
}

func syncCommand() *cobra.Command {
	var owner, repo, file, token string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push the assignment board into a repository README",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv("GITHUB_TOKEN")
			}
			if token == "" {
				return fmt.Errorf("a token is required, set --token or GITHUB_TOKEN")
			}

			api := client.New(apiURL)
			source := func(ctx context.Context) ([]*models.Assignment, error) {
				items, err := api.ListAllAssignments(ctx, dto.AssignmentListQuery{
					SortBy:    "dueDate",
					SortOrder: "asc",
				})
				if err != nil {
					return nil, err
				}
				assignments := make([]*models.Assignment, len(items))
				for i := range items {
					assignments[i] = &items[i]
				}
				return assignments, nil
			}

			syncer := ghsync.NewSyncer(ghsync.Options{
				Owner:    owner,
				Repo:     repo,
				FilePath: file,
				Token:    token,
			}, source)

			if err := syncer.Sync(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Synced %s in %s/%s\n", file, owner, repo)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "repository owner")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name")
	cmd.Flags().StringVar(&file, "file", "README.md", "file path inside the repository")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("repo")
	return cmd
}

func overviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the analytics overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := client.New(apiURL).Overview(cmd.Context())
			if err != nil {
				return err
			}

			o := overview.Overview
			fmt.Printf("Members: %d\nAssignments: %d\nCompletion rate: %.1f%%\nOverdue: %d\nDue today: %d\n",
				o.TotalMembers, o.TotalAssignments, o.CompletionRate, o.Overdue, o.DueToday)

			if len(overview.StatusDistribution) > 0 {
				fmt.Println("\nBy status:")
				for _, s := range overview.StatusDistribution {
					fmt.Printf("  %-12s %d\n", s.Key, s.Count)
				}
			}
			return nil
		},
	}
}
